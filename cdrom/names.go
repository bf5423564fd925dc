package cdrom

// commandNames maps a command byte to its mnemonic, used only for
// debug logging (mirrors the reference implementation's get_cmd_name).
var commandNames = map[uint8]string{
	0x01: "Getstat",
	0x02: "Setloc",
	0x03: "Play",
	0x06: "ReadN",
	0x07: "MotorOn",
	0x08: "Stop",
	0x09: "Pause",
	0x0A: "Init",
	0x0B: "Mute",
	0x0C: "Demute",
	0x0D: "Setfilter",
	0x0E: "Setmode",
	0x0F: "Getparam",
	0x11: "GetlocP",
	0x13: "GetTN",
	0x14: "GetTD",
	0x15: "SeekL",
	0x19: "Test",
	0x1A: "GetID",
	0x1B: "ReadS",
}

func commandName(cmd uint8) string {
	if name, ok := commandNames[cmd]; ok {
		return name
	}
	return "<unknown>"
}
