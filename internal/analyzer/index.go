package analyzer

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/catena-lang/catena/internal/ast"
	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/typesystem"
)

// ModuleIndex holds the constructor lookup maps derived from a module's
// data declarations. It is built once per check run and read-only after.
type ModuleIndex struct {
	// ConstrTypes maps a constructor name to its synthesized signature:
	// pre = the constructor's parameter types, post = the constructed
	// data type applied to its declared parameters as type variables.
	ConstrTypes map[string]typesystem.OpType
	// ConstrData maps a constructor name to its owning data definition.
	ConstrData map[string]*ast.DataDef
}

// NewModuleIndex builds the constructor maps. Constructor names must be
// unique across the whole module, not just within one data type; a
// collision silently shadowing another type's constructor would corrupt
// both lookup maps.
func NewModuleIndex(m *ast.Module) (*ModuleIndex, *diagnostics.DiagnosticError) {
	idx := &ModuleIndex{
		ConstrTypes: make(map[string]typesystem.OpType),
		ConstrData:  make(map[string]*ast.DataDef),
	}
	for _, dataName := range m.DataOrder {
		dataDef := m.DataDefs[dataName]
		params := lo.Map(dataDef.Params, func(p string, _ int) typesystem.Type {
			return typesystem.TVar{Name: p}
		})
		constructed := typesystem.MakeApp(typesystem.TCon{Name: dataName}, params...)

		for _, constrName := range dataDef.ConstrOrder {
			constr := dataDef.Constrs[constrName]
			if owner, exists := idx.ConstrData[constrName]; exists {
				return nil, diagnostics.NewError(diagnostics.ErrT007, constr.Tok,
					fmt.Sprintf("constructor %s is already defined by data type %s", constrName, owner.Name))
			}
			// Params are declared deepest first: the last field is on
			// top of the stack when the constructor runs.
			idx.ConstrTypes[constrName] = typesystem.OpType{
				Pre:  typesystem.ReverseStack(constr.Params),
				Post: []typesystem.Type{constructed},
			}
			idx.ConstrData[constrName] = dataDef
		}
	}
	return idx, nil
}
