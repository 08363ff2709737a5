package w65816

// Attribute is a bit set of opcode properties.
type Attribute uint16

// Opcode attributes.
const (
	IndexedX      Attribute = 1 << iota // operand is indexed by X
	IndexedY                            // operand is indexed by Y
	MDependant                          // immediate width depends on the M flag
	XDependant                          // immediate width depends on the X flag
	EnterSub                            // subroutine call
	ReturnSub                           // subroutine return
	ResetP                              // clears processor flags (REP)
	SetP                                // sets processor flags (SEP)
	Branch                              // relative branch, ends a basic block
	Jump                                // jump that does not return
	Unconditional                       // branch is always taken
)

var attributeNames = [...]string{
	"indexed_x",
	"indexed_y",
	"m_dependant",
	"x_dependant",
	"enter_sub",
	"return_sub",
	"reset_p",
	"set_p",
	"branch",
	"jump",
	"unconditional",
}

// Has returns whether all bits of attr are set.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr == attr
}

// HasAny returns whether at least one bit of attr is set.
func (a Attribute) HasAny(attr Attribute) bool {
	return a&attr != 0
}

func (a Attribute) String() string {
	s := ""
	for i, name := range attributeNames {
		if a&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += name
	}
	return s
}
