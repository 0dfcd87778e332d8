package types

// HardwareAddress represents the address of a hardware register
// mapped into the I/O region (0xFF00 - 0xFF7F) or the interrupt
// enable byte at 0xFFFF. Only the registers the core (or its
// debugging helpers) looks at are named here; everything else in
// the I/O region is plain storage owned by peripherals.
type HardwareAddress = uint16

const (
	// SB is the serial transfer data register. Test ROMs write
	// the character they want to print here before starting a
	// transfer through SC.
	SB HardwareAddress = 0xFF01
	// SC is the serial transfer control register. Writing 0x81
	// starts a transfer using the internal clock.
	SC HardwareAddress = 0xFF02
	// IF is the interrupt flag register, holding the pending
	// interrupt requests.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// BDIS is the boot ROM disable register. Any non-zero write
	// unmaps the boot ROM until the machine is recreated.
	BDIS HardwareAddress = 0xFF50
	// IE is the interrupt enable register. It sits on its own at
	// the very top of the address space.
	IE HardwareAddress = 0xFFFF
)

// Region bounds of the address space, as closed intervals. Sizes
// are derived from these so the two can never disagree.
const (
	ROMBank0Start  uint16 = 0x0000
	ROMBank0End    uint16 = 0x3FFF
	ROMBankNStart  uint16 = 0x4000
	ROMBankNEnd    uint16 = 0x7FFF
	VRAMStart      uint16 = 0x8000
	VRAMEnd        uint16 = 0x9FFF
	ExtRAMStart    uint16 = 0xA000
	ExtRAMEnd      uint16 = 0xBFFF
	WRAMStart      uint16 = 0xC000
	WRAMEnd        uint16 = 0xDFFF
	EchoStart      uint16 = 0xE000
	EchoEnd        uint16 = 0xFDFF
	OAMStart       uint16 = 0xFE00
	OAMEnd         uint16 = 0xFE9F
	ProhibitedFrom uint16 = 0xFEA0
	ProhibitedTo   uint16 = 0xFEFF
	IOStart        uint16 = 0xFF00
	IOEnd          uint16 = 0xFF7F
	HRAMStart      uint16 = 0xFF80
	HRAMEnd        uint16 = 0xFFFE

	// EchoOffset is the distance between an echo address and the
	// working memory cell it mirrors.
	EchoOffset uint16 = EchoStart - WRAMStart
)
