// Package ast defines the syntax tree for a catena module: data
// declarations, operation definitions, and the operation bodies the type
// checker walks. Nodes carry the token that introduced them so diagnostics
// can point back into the source.
package ast

import (
	"github.com/catena-lang/catena/internal/token"
	"github.com/catena-lang/catena/internal/typesystem"
)

type Node interface {
	GetToken() token.Token
}

// Module is one compilation unit. Definition maps are paired with order
// slices so every scan over the module is deterministic.
type Module struct {
	DataDefs  map[string]*DataDef
	DataOrder []string
	OpDefs    map[string]*OpDef
	OpOrder   []string
}

func NewModule() *Module {
	return &Module{
		DataDefs: make(map[string]*DataDef),
		OpDefs:   make(map[string]*OpDef),
	}
}

// AddData registers a data definition, reporting whether the name was free.
func (m *Module) AddData(d *DataDef) bool {
	if _, exists := m.DataDefs[d.Name]; exists {
		return false
	}
	m.DataDefs[d.Name] = d
	m.DataOrder = append(m.DataOrder, d.Name)
	return true
}

// AddOp registers an operation definition, reporting whether the name was
// free.
func (m *Module) AddOp(d *OpDef) bool {
	if _, exists := m.OpDefs[d.Name]; exists {
		return false
	}
	m.OpDefs[d.Name] = d
	m.OpOrder = append(m.OpOrder, d.Name)
	return true
}

// DataDef is an algebraic data type declaration: a name, its type
// parameters, and its constructors.
type DataDef struct {
	Name        string
	Params      []string
	Constrs     map[string]*ConstrDef
	ConstrOrder []string
	Tok         token.Token
}

func (d *DataDef) GetToken() token.Token { return d.Tok }

// AddConstr registers a constructor, reporting whether the name was free
// within this data type. Cross-type collisions are caught later when the
// module index is built.
func (d *DataDef) AddConstr(c *ConstrDef) bool {
	if d.Constrs == nil {
		d.Constrs = make(map[string]*ConstrDef)
	}
	if _, exists := d.Constrs[c.Name]; exists {
		return false
	}
	d.Constrs[c.Name] = c
	d.ConstrOrder = append(d.ConstrOrder, c.Name)
	return true
}

// ConstrDef is one constructor: the value types it consumes to build a
// value of the owning data type.
type ConstrDef struct {
	Name   string
	Params []typesystem.Type
	Tok    token.Token
}

func (c *ConstrDef) GetToken() token.Token { return c.Tok }

// OpDef is a user-defined operation with its declared stack signature.
// Foreign definitions have no body and are not type-checked.
type OpDef struct {
	Name    string
	Ann     typesystem.OpType
	Body    []Op
	Foreign bool
	Tok     token.Token
}

func (d *OpDef) GetToken() token.Token { return d.Tok }

// Op is a single operation in a body.
type Op interface {
	Node
	opNode()
}

// IntLit pushes an integer.
type IntLit struct {
	Value int64
	Tok   token.Token
}

func (l *IntLit) GetToken() token.Token { return l.Tok }
func (l *IntLit) opNode()               {}

// NameRef references a prelude operation, a constructor, or a user-defined
// operation.
type NameRef struct {
	Name string
	Tok  token.Token
}

func (n *NameRef) GetToken() token.Token { return n.Tok }
func (n *NameRef) opNode()               {}

// Quote pushes its body as a first-class operation value.
type Quote struct {
	Body []Op
	Tok  token.Token
}

func (q *Quote) GetToken() token.Token { return q.Tok }
func (q *Quote) opNode()               {}

// Match destructures the value on top of the stack by constructor. The
// first arm determines the matched data type; together the arms must cover
// its constructor set exactly.
type Match struct {
	Arms []*MatchArm
	Tok  token.Token
}

func (m *Match) GetToken() token.Token { return m.Tok }
func (m *Match) opNode()               {}

// MatchArm handles one constructor: the arm body runs with the
// constructor's fields on the stack in place of the matched value.
type MatchArm struct {
	Constr string
	Body   []Op
	Tok    token.Token
}

func (a *MatchArm) GetToken() token.Token { return a.Tok }
