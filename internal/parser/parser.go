// Package parser turns a token stream into an *ast.Module. It is a
// hand-written recursive-descent parser; on an unexpected token it records
// a diagnostic and resynchronizes at the next top-level declaration.
package parser

import (
	"fmt"
	"strconv"

	"github.com/catena-lang/catena/internal/ast"
	"github.com/catena-lang/catena/internal/diagnostics"
	"github.com/catena-lang/catena/internal/token"
	"github.com/catena-lang/catena/internal/typesystem"
)

type Parser struct {
	tokens []token.Token
	pos    int
	errors []*diagnostics.DiagnosticError
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(t token.TokenType) (token.Token, bool) {
	if p.cur().Type == t {
		return p.advance(), true
	}
	p.errorf(p.cur(), "expected %s, found %q", t, p.cur().Lexeme)
	return p.cur(), false
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP001, tok, fmt.Sprintf(format, args...)))
}

// synchronize skips to the next top-level declaration keyword.
func (p *Parser) synchronize() {
	for {
		switch p.cur().Type {
		case token.DATA, token.DEF, token.FOREIGN, token.EOF:
			return
		}
		p.advance()
	}
}

// ParseModule parses the whole token stream.
func (p *Parser) ParseModule() *ast.Module {
	mod := ast.NewModule()
	for p.cur().Type != token.EOF {
		switch p.cur().Type {
		case token.DATA:
			if d := p.parseDataDecl(); d != nil {
				if !mod.AddData(d) {
					p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, d.Tok,
						fmt.Sprintf("data type %s is already defined", d.Name)))
				}
			}
		case token.DEF, token.FOREIGN:
			if d := p.parseOpDecl(); d != nil {
				if !mod.AddOp(d) {
					p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, d.Tok,
						fmt.Sprintf("operation %s is already defined", d.Name)))
				}
			}
		default:
			p.errorf(p.cur(), "expected declaration, found %q", p.cur().Lexeme)
			p.synchronize()
		}
	}
	return mod
}

// parseDataDecl parses: data Name p1 p2 { Ctor1(T, U) Ctor2 }
func (p *Parser) parseDataDecl() *ast.DataDef {
	dataTok := p.advance() // data
	name, ok := p.expect(token.CONID)
	if !ok {
		p.synchronize()
		return nil
	}

	def := &ast.DataDef{Name: name.Literal, Tok: dataTok}
	for p.cur().Type == token.IDENT {
		def.Params = append(def.Params, p.advance().Literal)
	}

	if _, ok := p.expect(token.LBRACE); !ok {
		p.synchronize()
		return nil
	}
	for p.cur().Type == token.CONID {
		ctor := p.parseConstr()
		if ctor == nil {
			p.synchronize()
			return nil
		}
		if !def.AddConstr(ctor) {
			p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, ctor.Tok,
				fmt.Sprintf("constructor %s is already defined on %s", ctor.Name, def.Name)))
		}
	}
	if _, ok := p.expect(token.RBRACE); !ok {
		p.synchronize()
		return nil
	}
	return def
}

func (p *Parser) parseConstr() *ast.ConstrDef {
	name := p.advance()
	ctor := &ast.ConstrDef{Name: name.Literal, Tok: name}
	if p.cur().Type != token.LPAREN {
		return ctor
	}
	p.advance() // (
	for {
		t := p.parseType()
		if t == nil {
			return nil
		}
		ctor.Params = append(ctor.Params, t)
		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RPAREN); !ok {
		return nil
	}
	return ctor
}

// parseOpDecl parses: [foreign] def name : T1 T2 -- T3 { body }
func (p *Parser) parseOpDecl() *ast.OpDef {
	foreign := false
	startTok := p.cur()
	if p.cur().Type == token.FOREIGN {
		foreign = true
		p.advance()
	}
	if _, ok := p.expect(token.DEF); !ok {
		p.synchronize()
		return nil
	}
	name, ok := p.expect(token.IDENT)
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(token.COLON); !ok {
		p.synchronize()
		return nil
	}

	ann, ok := p.parseSignature(token.LBRACE)
	if !ok {
		p.synchronize()
		return nil
	}

	def := &ast.OpDef{Name: name.Literal, Ann: ann, Foreign: foreign, Tok: startTok}

	if foreign {
		if p.cur().Type == token.LBRACE {
			p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP003, p.cur(),
				fmt.Sprintf("foreign operation %s must not have a body", def.Name)))
			p.advance()
			def.Body = p.parseOps(token.RBRACE)
			p.expect(token.RBRACE)
			def.Body = nil
		}
		return def
	}

	if _, ok := p.expect(token.LBRACE); !ok {
		p.synchronize()
		return nil
	}
	def.Body = p.parseOps(token.RBRACE)
	if _, ok := p.expect(token.RBRACE); !ok {
		p.synchronize()
		return nil
	}
	return def
}

// parseSignature parses type atoms up to "--", then type atoms up to (but
// not including) the terminator. Written signatures list the deepest
// element first; the stacks are reversed into the internal top-first order.
func (p *Parser) parseSignature(term token.TokenType) (typesystem.OpType, bool) {
	var sig typesystem.OpType
	for p.cur().Type != token.EFFECT {
		if !p.startsType(p.cur().Type) {
			p.errorf(p.cur(), "expected type or --, found %q", p.cur().Lexeme)
			return sig, false
		}
		t := p.parseType()
		if t == nil {
			return sig, false
		}
		sig.Pre = append(sig.Pre, t)
	}
	p.advance() // --
	for p.cur().Type != term && p.startsType(p.cur().Type) {
		t := p.parseType()
		if t == nil {
			return sig, false
		}
		sig.Post = append(sig.Post, t)
	}
	sig.Pre = typesystem.ReverseStack(sig.Pre)
	sig.Post = typesystem.ReverseStack(sig.Post)
	return sig, true
}

func (p *Parser) startsType(t token.TokenType) bool {
	switch t {
	case token.CONID, token.IDENT, token.LPAREN, token.LBRACKET:
		return true
	}
	return false
}

// parseType parses a single type atom:
//
//	CONID               nullary type constructor
//	ident               type variable
//	( CONID T1 T2 )     parameterized type, left-associated application
//	[ T1 -- T2 ]        quoted-operation type
func (p *Parser) parseType() typesystem.Type {
	switch p.cur().Type {
	case token.CONID:
		return typesystem.TCon{Name: p.advance().Literal}
	case token.IDENT:
		return typesystem.TVar{Name: p.advance().Literal}
	case token.LPAREN:
		p.advance()
		head, ok := p.expect(token.CONID)
		if !ok {
			return nil
		}
		var t typesystem.Type = typesystem.TCon{Name: head.Literal}
		for p.cur().Type != token.RPAREN {
			arg := p.parseType()
			if arg == nil {
				return nil
			}
			t = typesystem.TApp{Fn: t, Arg: arg}
		}
		p.advance() // )
		return t
	case token.LBRACKET:
		p.advance()
		sig, ok := p.parseSignature(token.RBRACKET)
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.RBRACKET); !ok {
			return nil
		}
		return typesystem.TOp{Op: sig}
	default:
		p.errorf(p.cur(), "expected type, found %q", p.cur().Lexeme)
		return nil
	}
}

// parseOps parses operations until the terminator (not consumed).
func (p *Parser) parseOps(term token.TokenType) []ast.Op {
	var ops []ast.Op
	for p.cur().Type != term && p.cur().Type != token.EOF {
		op := p.parseOp()
		if op == nil {
			return ops
		}
		ops = append(ops, op)
	}
	return ops
}

func (p *Parser) parseOp() ast.Op {
	switch p.cur().Type {
	case token.INT:
		tok := p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf(tok, "invalid integer literal %q", tok.Literal)
			return nil
		}
		return &ast.IntLit{Value: v, Tok: tok}
	case token.IDENT, token.CONID:
		tok := p.advance()
		return &ast.NameRef{Name: tok.Literal, Tok: tok}
	case token.LBRACKET:
		tok := p.advance()
		body := p.parseOps(token.RBRACKET)
		if _, ok := p.expect(token.RBRACKET); !ok {
			return nil
		}
		return &ast.Quote{Body: body, Tok: tok}
	case token.MATCH:
		return p.parseMatch()
	default:
		p.errorf(p.cur(), "expected operation, found %q", p.cur().Lexeme)
		return nil
	}
}

// parseMatch parses: match Ctor1 { ops } Ctor2 { ops } end
func (p *Parser) parseMatch() ast.Op {
	matchTok := p.advance() // match
	m := &ast.Match{Tok: matchTok}
	for p.cur().Type == token.CONID {
		armTok := p.advance()
		if _, ok := p.expect(token.LBRACE); !ok {
			return nil
		}
		body := p.parseOps(token.RBRACE)
		if _, ok := p.expect(token.RBRACE); !ok {
			return nil
		}
		m.Arms = append(m.Arms, &ast.MatchArm{Constr: armTok.Literal, Body: body, Tok: armTok})
	}
	if len(m.Arms) == 0 {
		p.errorf(p.cur(), "match needs at least one arm")
		return nil
	}
	if _, ok := p.expect(token.END); !ok {
		return nil
	}
	return m
}
