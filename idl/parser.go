package idl

import (
	"fmt"
	"time"
)

// parseTimeout guards against pathological input driving the recursive
// descent into an unbounded loop; real schemas parse in microseconds.
const parseTimeout = 30 * time.Second

// Parser consumes a token stream produced by a Lexer and builds a Document.
type Parser struct {
	lex      *Lexer
	current  Token
	previous Token
	deadline time.Time
}

// Parse lexes and parses src into a Document.
func Parse(src string) (*Document, error) {
	p := &Parser{lex: NewLexer(src), deadline: time.Now().Add(parseTimeout)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseDocument()
}

func (p *Parser) parseDocument() (*Document, error) {
	doc := &Document{}
	for p.current.Type != TokenEOF {
		if err := p.checkTimeout(); err != nil {
			return nil, err
		}
		switch {
		case p.current.Type == TokenIdent && p.current.Value == "type":
			td, err := p.parseTypeDef()
			if err != nil {
				return nil, err
			}
			doc.Types = append(doc.Types, *td)
		case p.current.Type == TokenIdent && p.current.Value == "enum":
			ed, err := p.parseEnumDef()
			if err != nil {
				return nil, err
			}
			doc.Enums = append(doc.Enums, *ed)
		default:
			return nil, p.errorf("expected 'type' or 'enum', got %q", p.current.Value)
		}
	}
	return doc, nil
}

func (p *Parser) parseTypeDef() (*TypeDef, error) {
	line := p.current.Line
	if err := p.advance(); err != nil { // consume 'type'
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	anns, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	td := &TypeDef{Name: name, Annotations: anns, Line: line}
	for p.current.Type != TokenRBrace {
		if err := p.checkTimeout(); err != nil {
			return nil, err
		}
		field, err := p.parseFieldDef()
		if err != nil {
			return nil, err
		}
		td.Fields = append(td.Fields, *field)
	}
	if err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return td, nil
}

func (p *Parser) parseEnumDef() (*EnumDef, error) {
	line := p.current.Line
	if err := p.advance(); err != nil { // consume 'enum'
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	anns, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	ed := &EnumDef{Name: name, Annotations: anns, Line: line}
	for p.current.Type != TokenRBrace {
		if err := p.checkTimeout(); err != nil {
			return nil, err
		}
		v, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		ed.Values = append(ed.Values, v)
		if p.current.Type == TokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return ed, nil
}

func (p *Parser) parseFieldDef() (*FieldDef, error) {
	line := p.current.Line
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	anns, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	if p.current.Type == TokenComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &FieldDef{Name: name, Type: typeRef, Annotations: anns, Line: line}, nil
}

// parseTypeRef accepts exactly NamedType, NonNullType, ListType as wrappers.
func (p *Parser) parseTypeRef() (*TypeRef, error) {
	var ref *TypeRef
	if p.current.Type == TokenLBracket {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRBracket); err != nil {
			return nil, err
		}
		ref = &TypeRef{Kind: ListType, Of: inner}
	} else {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		ref = &TypeRef{Kind: NamedType, Name: name}
	}
	if p.current.Type == TokenBang {
		if err := p.advance(); err != nil {
			return nil, err
		}
		ref = &TypeRef{Kind: NonNullType, Of: ref}
	}
	return ref, nil
}

func (p *Parser) parseAnnotations() ([]Annotation, error) {
	var anns []Annotation
	for p.current.Type == TokenAt {
		line := p.current.Line
		if err := p.advance(); err != nil { // consume '@'
			return nil, err
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		ann := Annotation{Name: name, Line: line}
		if p.current.Type == TokenLParen {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			ann.Args = args
		}
		anns = append(anns, ann)
	}
	return anns, nil
}

func (p *Parser) parseArgs() (map[string]AnnotationValue, error) {
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	args := map[string]AnnotationValue{}
	for p.current.Type != TokenRParen {
		if err := p.checkTimeout(); err != nil {
			return nil, err
		}
		key, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args[key] = val
		if p.current.Type == TokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseValue() (AnnotationValue, error) {
	switch p.current.Type {
	case TokenString:
		v := AnnotationValue{Kind: ValueString, Str: p.current.Value}
		return v, p.advance()
	case TokenInt:
		var n int64
		if _, err := fmt.Sscanf(p.current.Value, "%d", &n); err != nil {
			return AnnotationValue{}, p.errorf("invalid integer literal %q", p.current.Value)
		}
		v := AnnotationValue{Kind: ValueInt, Int: n}
		return v, p.advance()
	case TokenFloat:
		var f float64
		if _, err := fmt.Sscanf(p.current.Value, "%g", &f); err != nil {
			return AnnotationValue{}, p.errorf("invalid float literal %q", p.current.Value)
		}
		v := AnnotationValue{Kind: ValueFloat, Float: f}
		return v, p.advance()
	case TokenIdent:
		switch p.current.Value {
		case "true":
			return AnnotationValue{Kind: ValueBool, Bool: true}, p.advance()
		case "false":
			return AnnotationValue{Kind: ValueBool, Bool: false}, p.advance()
		case "null":
			return AnnotationValue{Kind: ValueNull}, p.advance()
		default:
			v := AnnotationValue{Kind: ValueEnum, Str: p.current.Value}
			return v, p.advance()
		}
	case TokenLBracket:
		return p.parseListValue()
	case TokenLBrace:
		return p.parseObjectValue()
	default:
		return AnnotationValue{}, p.errorf("unexpected token %q in annotation value", p.current.Value)
	}
}

func (p *Parser) parseListValue() (AnnotationValue, error) {
	if err := p.expect(TokenLBracket); err != nil {
		return AnnotationValue{}, err
	}
	var items []AnnotationValue
	for p.current.Type != TokenRBracket {
		if err := p.checkTimeout(); err != nil {
			return AnnotationValue{}, err
		}
		v, err := p.parseValue()
		if err != nil {
			return AnnotationValue{}, err
		}
		items = append(items, v)
		if p.current.Type == TokenComma {
			if err := p.advance(); err != nil {
				return AnnotationValue{}, err
			}
		}
	}
	if err := p.expect(TokenRBracket); err != nil {
		return AnnotationValue{}, err
	}
	return AnnotationValue{Kind: ValueList, List: items}, nil
}

func (p *Parser) parseObjectValue() (AnnotationValue, error) {
	if err := p.expect(TokenLBrace); err != nil {
		return AnnotationValue{}, err
	}
	obj := map[string]AnnotationValue{}
	for p.current.Type != TokenRBrace {
		if err := p.checkTimeout(); err != nil {
			return AnnotationValue{}, err
		}
		key, err := p.expectIdent()
		if err != nil {
			return AnnotationValue{}, err
		}
		if err := p.expect(TokenColon); err != nil {
			return AnnotationValue{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return AnnotationValue{}, err
		}
		obj[key] = val
		if p.current.Type == TokenComma {
			if err := p.advance(); err != nil {
				return AnnotationValue{}, err
			}
		}
	}
	if err := p.expect(TokenRBrace); err != nil {
		return AnnotationValue{}, err
	}
	return AnnotationValue{Kind: ValueObject, Object: obj}, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.previous = p.current
	p.current = tok
	return nil
}

func (p *Parser) expect(tt TokenType) error {
	if p.current.Type != tt {
		return p.errorf("unexpected token %q", p.current.Value)
	}
	return p.advance()
}

func (p *Parser) expectIdent() (string, error) {
	if p.current.Type != TokenIdent {
		return "", p.errorf("expected identifier, got %q", p.current.Value)
	}
	v := p.current.Value
	return v, p.advance()
}

func (p *Parser) checkTimeout() error {
	if time.Now().After(p.deadline) {
		return fmt.Errorf("idl: parse exceeded timeout at line %d", p.current.Line)
	}
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("idl: %s (line %d, column %d)", msg, p.current.Line, p.current.Column)
}
