package w65816

// Groups contains all opcodes used by the analyzed program code, grouped by
// mnemonic. It is not the complete 65816 instruction set.
var Groups = []Group{
	{
		Mnemonic: "ADC",
		Opcodes: []OpcodeDesc{
			{0x65, DirectAddressing, 0},
			{0x6D, AbsoluteAddressing, 0},
			{0x6F, AbsoluteLongAddressing, 0},
			{0x7F, AbsoluteLongIndexedAddressing, IndexedX},
			{0x69, ImmediateAddressing, MDependant},
			{0x7D, AbsoluteIndexedAddressing, IndexedX},
			{0x79, AbsoluteIndexedAddressing, IndexedY},
			{0x63, StackRelativeAddressing, 0},
			{0x71, DirectIndexedAddressing, IndexedY},
		},
	},
	{
		Mnemonic: "AND",
		Opcodes: []OpcodeDesc{
			{0x25, DirectAddressing, 0},
			{0x2D, AbsoluteAddressing, 0},
			{0x29, ImmediateAddressing, MDependant},
			{0x31, DirectIndexedAddressing, IndexedY},
		},
	},
	{
		Mnemonic: "ASL",
		Opcodes: []OpcodeDesc{
			{0x06, DirectAddressing, 0},
			{0x0A, AccumulatorAddressing, 0},
			{0x0E, AbsoluteAddressing, 0},
			{0x1E, AbsoluteIndexedAddressing, IndexedX},
		},
	},
	{Mnemonic: "BCC", Attributes: Branch, Opcodes: []OpcodeDesc{{0x90, PCRelativeAddressing, 0}}},
	{Mnemonic: "BCS", Attributes: Branch, Opcodes: []OpcodeDesc{{0xB0, PCRelativeAddressing, 0}}},
	{Mnemonic: "BEQ", Attributes: Branch, Opcodes: []OpcodeDesc{{0xF0, PCRelativeAddressing, 0}}},
	{
		Mnemonic: "BIT",
		Opcodes: []OpcodeDesc{
			{0x24, DirectAddressing, 0},
			{0x89, ImmediateAddressing, MDependant},
			{0x3C, AbsoluteIndexedAddressing, IndexedX},
		},
	},
	{Mnemonic: "BMI", Attributes: Branch, Opcodes: []OpcodeDesc{{0x30, PCRelativeAddressing, 0}}},
	{Mnemonic: "BNE", Attributes: Branch, Opcodes: []OpcodeDesc{{0xD0, PCRelativeAddressing, 0}}},
	{Mnemonic: "BPL", Attributes: Branch, Opcodes: []OpcodeDesc{{0x10, PCRelativeAddressing, 0}}},
	{Mnemonic: "BRA", Attributes: Branch|Unconditional, Opcodes: []OpcodeDesc{{0x80, PCRelativeAddressing, 0}}},
	{Mnemonic: "BRK", Opcodes: []OpcodeDesc{{0x00, NoAddressing, 0}}},
	{Mnemonic: "CLC", Opcodes: []OpcodeDesc{{0x18, NoAddressing, 0}}},
	{Mnemonic: "CLD", Opcodes: []OpcodeDesc{{0xD8, NoAddressing, 0}}},
	{Mnemonic: "CLI", Opcodes: []OpcodeDesc{{0x58, NoAddressing, 0}}},
	{Mnemonic: "CLV", Opcodes: []OpcodeDesc{{0xB8, NoAddressing, 0}}},
	{
		Mnemonic: "CMP",
		Opcodes: []OpcodeDesc{
			{0xC5, DirectAddressing, 0},
			{0xD5, DirectIndexedAddressing, IndexedX},
			{0xCD, AbsoluteAddressing, 0},
			{0xCF, AbsoluteLongAddressing, 0},
			{0xC9, ImmediateAddressing, MDependant},
			{0xC3, StackRelativeAddressing, 0},
			{0xD9, AbsoluteIndexedAddressing, IndexedY},
			{0xDD, AbsoluteIndexedAddressing, IndexedX},
			{0xDF, AbsoluteLongIndexedAddressing, IndexedX},
			{0xD7, IndirectLongIndexedAddressing, IndexedY},
			{0xD1, DirectIndexedAddressing, IndexedY},
		},
	},
	{Mnemonic: "COP", Opcodes: []OpcodeDesc{{0x02, ImmediateAddressing, 0}}},
	{
		Mnemonic: "CPX",
		Opcodes: []OpcodeDesc{
			{0xE0, ImmediateAddressing, XDependant},
			{0xE4, DirectAddressing, 0},
			{0xEC, AbsoluteAddressing, 0},
		},
	},
	{
		Mnemonic: "CPY",
		Opcodes: []OpcodeDesc{
			{0xC4, DirectAddressing, 0},
			{0xC0, ImmediateAddressing, XDependant},
		},
	},
	{
		Mnemonic: "DEC",
		Opcodes: []OpcodeDesc{
			{0x3A, AccumulatorAddressing, 0},
			{0xC6, DirectAddressing, 0},
			{0xCE, AbsoluteAddressing, 0},
			{0xDE, AbsoluteIndexedAddressing, IndexedX},
		},
	},
	{Mnemonic: "DEX", Opcodes: []OpcodeDesc{{0xCA, NoAddressing, 0}}},
	{Mnemonic: "DEY", Opcodes: []OpcodeDesc{{0x88, NoAddressing, 0}}},
	{
		Mnemonic: "EOR",
		Opcodes: []OpcodeDesc{
			{0x45, DirectAddressing, 0},
			{0x49, ImmediateAddressing, MDependant},
			{0x51, DirectIndexedAddressing, IndexedY},
		},
	},
	{
		Mnemonic: "INC",
		Opcodes: []OpcodeDesc{
			{0xE6, DirectAddressing, 0},
			{0x1A, AccumulatorAddressing, 0},
			{0xEE, AbsoluteAddressing, 0},
			{0xFE, AbsoluteIndexedAddressing, IndexedX},
		},
	},
	{Mnemonic: "INX", Opcodes: []OpcodeDesc{{0xE8, NoAddressing, 0}}},
	{Mnemonic: "INY", Opcodes: []OpcodeDesc{{0xC8, NoAddressing, 0}}},
	{
		Mnemonic:   "JMP",
		Attributes: Jump,
		Opcodes: []OpcodeDesc{
			{0x4C, AbsoluteAddressing, 0},
			{0x5C, AbsoluteLongAddressing, 0},
		},
	},
	{
		Mnemonic:   "JSL",
		Attributes: EnterSub,
		Opcodes: []OpcodeDesc{
			{0x22, AbsoluteLongAddressing, 0},
			{0xFC, AbsoluteIndexedIndirectAddressing, IndexedX},
		},
	},
	{Mnemonic: "JSR", Attributes: EnterSub, Opcodes: []OpcodeDesc{{0x20, AbsoluteAddressing, 0}}},
	{
		Mnemonic: "LDA",
		Opcodes: []OpcodeDesc{
			{0xA9, ImmediateAddressing, MDependant},
			{0xA5, DirectAddressing, 0},
			{0xB2, IndirectAddressing, 0},
			{0xB5, DirectIndexedAddressing, IndexedX},
			{0xAD, AbsoluteAddressing, 0},
			{0xBF, AbsoluteLongIndexedAddressing, IndexedX},
			{0xBD, AbsoluteIndexedAddressing, IndexedX},
			{0xB9, AbsoluteIndexedAddressing, IndexedY},
			{0xA3, StackRelativeAddressing, 0},
			{0xAF, AbsoluteLongAddressing, 0},
			{0xA7, IndirectLongAddressing, 0},
			{0xB1, IndirectIndexedAddressing, IndexedY},
			{0xB7, IndirectLongIndexedAddressing, IndexedY},
		},
	},
	{
		Mnemonic: "LDX",
		Opcodes: []OpcodeDesc{
			{0xAE, AbsoluteAddressing, 0},
			{0xBE, AbsoluteIndexedAddressing, IndexedY},
			{0xA6, DirectAddressing, 0},
			{0xA2, ImmediateAddressing, XDependant},
		},
	},
	{
		Mnemonic: "LDY",
		Opcodes: []OpcodeDesc{
			{0xAC, AbsoluteAddressing, 0},
			{0xA0, ImmediateAddressing, XDependant},
			{0xA4, DirectAddressing, 0},
			{0xBC, AbsoluteIndexedAddressing, IndexedX},
		},
	},
	{
		Mnemonic: "LSR",
		Opcodes: []OpcodeDesc{
			{0x4A, AccumulatorAddressing, 0},
			{0x46, DirectAddressing, 0},
		},
	},
	{Mnemonic: "NOP", Opcodes: []OpcodeDesc{{0xEA, NoAddressing, 0}}},
	{Mnemonic: "MVN", Opcodes: []OpcodeDesc{{0x54, BlockMoveAddressing, 0}}},
	{Mnemonic: "MVP", Opcodes: []OpcodeDesc{{0x44, BlockMoveAddressing, 0}}},
	{
		Mnemonic: "ORA",
		Opcodes: []OpcodeDesc{
			{0x05, DirectAddressing, 0},
			{0x0D, AbsoluteAddressing, 0},
			{0x0F, AbsoluteLongAddressing, 0},
			{0x03, StackRelativeAddressing, 0},
			{0x09, ImmediateAddressing, MDependant},
			{0x1D, AbsoluteIndexedAddressing, IndexedX},
			{0x19, AbsoluteIndexedAddressing, IndexedY},
			{0x11, DirectIndexedAddressing, IndexedY},
			{0x07, IndirectLongAddressing, 0},
			{0x17, IndirectLongIndexedAddressing, IndexedY},
		},
	},
	{Mnemonic: "PEA", Opcodes: []OpcodeDesc{{0xF4, AbsoluteAddressing, 0}}},
	{Mnemonic: "PHA", Opcodes: []OpcodeDesc{{0x48, NoAddressing, 0}}},
	{Mnemonic: "PHB", Opcodes: []OpcodeDesc{{0x8B, NoAddressing, 0}}},
	{Mnemonic: "PHD", Opcodes: []OpcodeDesc{{0x0B, NoAddressing, 0}}},
	{Mnemonic: "PHK", Opcodes: []OpcodeDesc{{0x4B, NoAddressing, 0}}},
	{Mnemonic: "PHP", Opcodes: []OpcodeDesc{{0x08, NoAddressing, 0}}},
	{Mnemonic: "PHX", Opcodes: []OpcodeDesc{{0xDA, NoAddressing, 0}}},
	{Mnemonic: "PHY", Opcodes: []OpcodeDesc{{0x5A, NoAddressing, 0}}},
	{Mnemonic: "PLA", Opcodes: []OpcodeDesc{{0x68, NoAddressing, 0}}},
	{Mnemonic: "PLB", Opcodes: []OpcodeDesc{{0xAB, NoAddressing, 0}}},
	{Mnemonic: "PLD", Opcodes: []OpcodeDesc{{0x2B, NoAddressing, 0}}},
	{Mnemonic: "PLP", Opcodes: []OpcodeDesc{{0x28, NoAddressing, 0}}},
	{Mnemonic: "PLX", Opcodes: []OpcodeDesc{{0xFA, NoAddressing, 0}}},
	{Mnemonic: "PLY", Opcodes: []OpcodeDesc{{0x7A, NoAddressing, 0}}},
	{
		Mnemonic: "REP",
		Opcodes: []OpcodeDesc{
			{0xC2, ImmediateAddressing, ResetP},
		},
	},
	{
		Mnemonic: "ROL",
		Opcodes: []OpcodeDesc{
			{0x26, DirectAddressing, 0},
			{0x2A, AccumulatorAddressing, 0},
			{0x2E, AbsoluteAddressing, 0},
		},
	},
	{
		Mnemonic: "ROR",
		Opcodes: []OpcodeDesc{
			{0x6A, AccumulatorAddressing, 0},
			{0x7E, AbsoluteIndexedAddressing, IndexedX},
		},
	},
	{Mnemonic: "RTI", Attributes: ReturnSub, Opcodes: []OpcodeDesc{{0x40, NoAddressing, 0}}},
	{Mnemonic: "RTL", Attributes: ReturnSub, Opcodes: []OpcodeDesc{{0x6B, NoAddressing, 0}}},
	{Mnemonic: "RTS", Attributes: ReturnSub, Opcodes: []OpcodeDesc{{0x60, NoAddressing, 0}}},
	{
		Mnemonic: "SBC",
		Opcodes: []OpcodeDesc{
			{0xE9, ImmediateAddressing, MDependant},
			{0xE5, DirectAddressing, 0},
			{0xED, AbsoluteAddressing, 0},
			{0xFD, AbsoluteIndexedAddressing, IndexedX},
			{0xF9, AbsoluteIndexedAddressing, IndexedY},
		},
	},
	{Mnemonic: "SEC", Opcodes: []OpcodeDesc{{0x38, NoAddressing, 0}}},
	{Mnemonic: "SED", Opcodes: []OpcodeDesc{{0xF8, NoAddressing, 0}}},
	{Mnemonic: "SEI", Opcodes: []OpcodeDesc{{0x78, NoAddressing, 0}}},
	{
		Mnemonic: "SEP",
		Opcodes: []OpcodeDesc{
			{0xE2, ImmediateAddressing, SetP},
		},
	},
	{
		Mnemonic: "STA",
		Opcodes: []OpcodeDesc{
			{0x85, DirectAddressing, 0},
			{0x95, DirectIndexedAddressing, IndexedX},
			{0x92, IndirectAddressing, 0},
			{0x83, StackRelativeAddressing, 0},
			{0x8D, AbsoluteAddressing, 0},
			{0x8F, AbsoluteLongAddressing, 0},
			{0x99, AbsoluteIndexedAddressing, IndexedY},
			{0x9D, AbsoluteIndexedAddressing, IndexedX},
			{0x9F, AbsoluteLongIndexedAddressing, IndexedX},
			{0x91, IndirectIndexedAddressing, IndexedY},
			{0x97, IndirectLongIndexedAddressing, IndexedY},
		},
	},
	{
		Mnemonic: "STX",
		Opcodes: []OpcodeDesc{
			{0x86, DirectAddressing, 0},
			{0x8E, AbsoluteAddressing, 0},
		},
	},
	{
		Mnemonic: "STY",
		Opcodes: []OpcodeDesc{
			{0x84, DirectAddressing, 0},
			{0x8C, AbsoluteAddressing, 0},
		},
	},
	{
		Mnemonic: "STZ",
		Opcodes: []OpcodeDesc{
			{0x9C, AbsoluteAddressing, 0},
			{0x64, DirectAddressing, 0},
			{0x9E, AbsoluteIndexedAddressing, IndexedX},
			{0x74, DirectIndexedAddressing, IndexedX},
		},
	},
	{Mnemonic: "TAX", Opcodes: []OpcodeDesc{{0xAA, NoAddressing, 0}}},
	{Mnemonic: "TAY", Opcodes: []OpcodeDesc{{0xA8, NoAddressing, 0}}},
	{Mnemonic: "TCD", Opcodes: []OpcodeDesc{{0x5B, NoAddressing, 0}}},
	{Mnemonic: "TCS", Opcodes: []OpcodeDesc{{0x1B, NoAddressing, 0}}},
	{Mnemonic: "TDB", Opcodes: []OpcodeDesc{{0x14, DirectAddressing, 0}}},
	{Mnemonic: "TDC", Opcodes: []OpcodeDesc{{0x7B, NoAddressing, 0}}},
	{
		Mnemonic: "TSB",
		Opcodes: []OpcodeDesc{
			{0x04, DirectAddressing, 0},
			{0x0C, AbsoluteAddressing, 0},
		},
	},
	{Mnemonic: "TSC", Opcodes: []OpcodeDesc{{0x3B, NoAddressing, 0}}},
	{Mnemonic: "TSX", Opcodes: []OpcodeDesc{{0xBA, NoAddressing, 0}}},
	{Mnemonic: "TXA", Opcodes: []OpcodeDesc{{0x8A, NoAddressing, 0}}},
	{Mnemonic: "TXS", Opcodes: []OpcodeDesc{{0x9A, NoAddressing, 0}}},
	{Mnemonic: "TXY", Opcodes: []OpcodeDesc{{0x9B, NoAddressing, 0}}},
	{Mnemonic: "TYA", Opcodes: []OpcodeDesc{{0x98, NoAddressing, 0}}},
	{Mnemonic: "TYX", Opcodes: []OpcodeDesc{{0xBB, NoAddressing, 0}}},
	{Mnemonic: "XBA", Opcodes: []OpcodeDesc{{0xEB, NoAddressing, 0}}},
}
