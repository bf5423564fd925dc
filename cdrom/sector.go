package cdrom

// SectorSize is the raw size in bytes of one CD-ROM sector as delivered by
// the disc image reader, regardless of the mode the host requests data in.
const SectorSize = 2352

// dataPayloadOffset and wholePayloadOffset are the two offsets read_byte
// can start from, selected by ModeRegister.payloadOffset from mode bit 5
// (modeBitSectorSizeIsWhole).
const (
	dataPayloadOffset  = 24 // 2048-byte Mode-1/Mode-2-form-1 user data
	wholePayloadOffset = 12 // 2340-byte payload including header/subheader
)

// syncMagic is the 12-byte sync pattern that opens every data sector:
// 00 FF*10 00.
var syncMagic = [12]byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}

// SectorKind classifies what a disc image reports at a given LBA.
type SectorKind int

const (
	SectorInvalid SectorKind = iota // outside every track
	SectorData
	SectorAudio
)

func (k SectorKind) String() string {
	switch k {
	case SectorData:
		return "Data"
	case SectorAudio:
		return "Audio"
	default:
		return "Invalid"
	}
}

// Sector is one raw 2352-byte CD-ROM sector, as read from a disc image.
type Sector struct {
	Data [SectorSize]byte
}

// HasSyncMagic reports whether the first 12 bytes match the Mode-1/Mode-2
// sync pattern. Audio sectors normally fail this check; data sectors
// normally pass it.
func (s *Sector) HasSyncMagic() bool {
	return [12]byte(s.Data[:12]) == syncMagic
}
