package ast

import "github.com/go-csstree/csstree/token"

// Selector is implemented by every node the selectors parser (package
// selector) can produce: the simple/compound/complex selector tree
// described by the CSS Selectors Level 4 grammar.
type Selector interface {
	Node
	selector()
}

// NsPrefix is the namespace prefix of a TypeSelector or
// AttributeSelector's WqName: either an identifier, "*" (any
// namespace), or absent (no namespace / default namespace per
// context).
type NsPrefix struct {
	Value    string // ident text, or "*"
	IsUniversal bool // true when Value holds "*"
	Loc      token.Location
}

// WqName is an optionally namespace-qualified name.
type WqName struct {
	Prefix *NsPrefix
	Name   string
	Loc    token.Location
}

// TypeSelector matches an element by tag name, or "*" for any.
type TypeSelector struct {
	Prefix     *NsPrefix
	Name       string // tag name, or "*" for the universal selector
	IsUniversal bool
	Loc        token.Location
}

func (n *TypeSelector) node()                    {}
func (n *TypeSelector) Location() token.Location { return n.Loc }
func (n *TypeSelector) selector()                {}

// IdSelector matches an element's id ("#foo").
type IdSelector struct {
	Name string
	Loc  token.Location
}

func (n *IdSelector) node()                    {}
func (n *IdSelector) Location() token.Location { return n.Loc }
func (n *IdSelector) selector()                {}

// ClassSelector matches one of an element's classes (".foo").
type ClassSelector struct {
	Name string
	Loc  token.Location
}

func (n *ClassSelector) node()                    {}
func (n *ClassSelector) Location() token.Location { return n.Loc }
func (n *ClassSelector) selector()                {}

// AttrOperator is an attribute selector's matcher operator.
type AttrOperator string

const (
	AttrEquals    AttrOperator = "="
	AttrIncludes  AttrOperator = "~="
	AttrDashMatch AttrOperator = "|="
	AttrPrefix    AttrOperator = "^="
	AttrSuffix    AttrOperator = "$="
	AttrSubstring AttrOperator = "*="
)

// AttributeSelector matches an element's attribute, e.g.
// "[href^="https://" i]".
type AttributeSelector struct {
	Name     WqName
	Operator AttrOperator // empty if this is a bare [name] existence test
	Value    string       // present iff Operator != ""
	// Modifier is "i" (ASCII case-insensitive), "s" (case-sensitive),
	// or empty.
	Modifier string
	Loc      token.Location
}

func (n *AttributeSelector) node()                    {}
func (n *AttributeSelector) Location() token.Location { return n.Loc }
func (n *AttributeSelector) selector()                {}

// PseudoClassSelector is either a bare pseudo-class (":hover") or a
// functional one whose Function field is set (":not(.a, .b)").
type PseudoClassSelector struct {
	Name     string
	Function *PseudoClassFunction // non-nil for functional pseudo-classes
	Loc      token.Location
}

func (n *PseudoClassSelector) node()                    {}
func (n *PseudoClassSelector) Location() token.Location { return n.Loc }
func (n *PseudoClassSelector) selector()                {}

// PseudoClassFunction is the argument list of a functional
// pseudo-class. For the selector-list-shaped forms (:not(), :is(),
// :where(), :matches(), :has()) Arguments holds the re-parsed selector
// tree. Other functional pseudo-classes (:nth-child(), :lang(), :dir(),
// ...) carry their own microsyntax instead of a selector list: Arguments
// is left nil and Raw holds their unparsed component values verbatim,
// so no functional pseudo-class's source content is ever discarded.
type PseudoClassFunction struct {
	Name      string
	Arguments []Selector
	Raw       []ComponentValue
	Loc       token.Location
}

func (n *PseudoClassFunction) node()                    {}
func (n *PseudoClassFunction) Location() token.Location { return n.Loc }
func (n *PseudoClassFunction) selector()                {}

// PseudoElementSelector is a "::" pseudo-element, modeled as wrapping
// the PseudoClassSelector-shaped syntax that follows the "::".
type PseudoElementSelector struct {
	PseudoClass *PseudoClassSelector
	Loc         token.Location
}

func (n *PseudoElementSelector) node()                    {}
func (n *PseudoElementSelector) Location() token.Location { return n.Loc }
func (n *PseudoElementSelector) selector()                {}

// CombinatorKind distinguishes the five combinator shapes the source
// can spell, including the implicit (whitespace) descendant
// combinator, which is promoted to an explicit node so a formatter can
// reproduce canonical whitespace.
type CombinatorKind int

const (
	Descendant CombinatorKind = iota
	Child
	NextSibling
	SubsequentSibling
	Column
)

func (k CombinatorKind) String() string {
	switch k {
	case Descendant:
		return " "
	case Child:
		return ">"
	case NextSibling:
		return "+"
	case SubsequentSibling:
		return "~"
	case Column:
		return "||"
	default:
		return "?"
	}
}

// Combinator is the separator between two compound selectors inside a
// ComplexSelector.
type Combinator struct {
	Kind CombinatorKind
	Loc  token.Location
}

func (n *Combinator) node()                    {}
func (n *Combinator) Location() token.Location { return n.Loc }
func (n *Combinator) selector()                {}

// PseudoElementGroup is a trailing "::foo:bar:baz"-style group: one
// pseudo-element followed by zero or more pseudo-classes that apply
// to it (legal only per the Selectors 4 grammar's compound-selector
// production).
type PseudoElementGroup struct {
	PseudoElement *PseudoElementSelector
	PseudoClasses []*PseudoClassSelector
}

// CompoundSelector is a type selector, subclass selectors, and
// pseudo-element groups with no separating whitespace. A compound
// selector with exactly one concrete piece and no pseudo-element
// groups collapses to that piece instead (see Collapse).
type CompoundSelector struct {
	Type            *TypeSelector
	Subclasses      []Selector // Id/Class/Attribute/PseudoClass selectors
	PseudoElements  []PseudoElementGroup
	Loc             token.Location
}

func (n *CompoundSelector) node()                    {}
func (n *CompoundSelector) Location() token.Location { return n.Loc }
func (n *CompoundSelector) selector()                {}

// Collapse returns the single contained selector when this compound
// selector has exactly one concrete piece and no pseudo-element
// groups, per the collapsing invariant; otherwise it returns n
// unchanged.
func (n *CompoundSelector) Collapse() Selector {
	if len(n.PseudoElements) > 0 {
		return n
	}
	pieces := len(n.Subclasses)
	if n.Type != nil {
		pieces++
	}
	if pieces != 1 {
		return n
	}
	if n.Type != nil {
		return n.Type
	}
	return n.Subclasses[0]
}

// ComplexSelector is a sequence of compound (or simple, after
// collapsing) selectors joined by combinators. Children alternates
// selector, combinator, selector, .... A complex selector with exactly
// one child collapses to that child instead (see Collapse).
type ComplexSelector struct {
	Children []Selector // odd indices are *Combinator
	Loc      token.Location
}

func (n *ComplexSelector) node()                    {}
func (n *ComplexSelector) Location() token.Location { return n.Loc }
func (n *ComplexSelector) selector()                {}

// Collapse returns the single child when this complex selector has
// exactly one.
func (n *ComplexSelector) Collapse() Selector {
	if len(n.Children) == 1 {
		return n.Children[0]
	}
	return n
}

// RelativeSelector is a complex selector optionally led by an
// explicit combinator relative to an implied anchor (used inside
// :has()).
type RelativeSelector struct {
	Combinator *Combinator // nil implies Descendant
	Complex    *ComplexSelector
	Loc        token.Location
}

func (n *RelativeSelector) node()                    {}
func (n *RelativeSelector) Location() token.Location { return n.Loc }
func (n *RelativeSelector) selector()                {}
