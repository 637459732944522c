package syntax

import (
	"strconv"
	"strings"
)

// String renders n in a compact, source-like form. Statements are rendered by
// their header only ("if (c)", "while (c)"), expressions in full.
func String(n Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Ident:
		b.WriteString(n.Name)
	case *Literal:
		writeLiteral(b, n)
	case *Paren:
		b.WriteByte('(')
		write(b, n.X)
		b.WriteByte(')')
	case *Unary:
		b.WriteString(unaryText(n.Op))
		write(b, n.X)
	case *Binary:
		write(b, n.Left)
		b.WriteString(" " + n.Op.String() + " ")
		write(b, n.Right)
	case *Assign:
		write(b, n.Lhs)
		if n.Compound {
			b.WriteString(" " + n.Op.String() + "= ")
		} else {
			b.WriteString(" = ")
		}
		write(b, n.Rhs)
	case *TupleAssign:
		for i, l := range n.Lhs {
			if i > 0 {
				b.WriteString(", ")
			}
			if l == nil {
				b.WriteByte('_')
				continue
			}
			write(b, l)
		}
		b.WriteString(" = ")
		writeList(b, n.Rhs)
	case *IncDec:
		write(b, n.X)
		if n.Inc {
			b.WriteString("++")
		} else {
			b.WriteString("--")
		}
	case *Conditional:
		write(b, n.Cond)
		b.WriteString(" ? ")
		write(b, n.Then)
		b.WriteString(" : ")
		write(b, n.Else)
	case *Coalesce:
		write(b, n.Left)
		b.WriteString(" ?? ")
		write(b, n.Right)
	case *ConditionalAccess:
		write(b, n.X)
		b.WriteByte('?')
		write(b, n.Access)
	case *Binding:
	case *MemberAccess:
		if _, ok := n.X.(*Binding); !ok {
			write(b, n.X)
		}
		b.WriteString("." + n.Name)
	case *ElementAccess:
		write(b, n.X)
		b.WriteByte('[')
		write(b, n.Index)
		b.WriteByte(']')
	case *Invocation:
		write(b, n.Fun)
		b.WriteByte('(')
		writeList(b, n.Args)
		b.WriteByte(')')
	case *ObjectCreation:
		b.WriteString("new " + n.Type + "(")
		writeList(b, n.Args)
		b.WriteByte(')')
	case *Lambda:
		b.WriteString("lambda")
	case *Conversion:
		b.WriteString("(" + n.Type + ")")
		write(b, n.X)
	case *Opaque:
		if n.Text != "" {
			b.WriteString(n.Text)
			return
		}
		b.WriteString("opaque(")
		writeList(b, n.Operands)
		b.WriteByte(')')
	case *ForEachBinding:
		b.WriteString("foreach ")
		for i, v := range n.Loop.Vars {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, v)
		}
	case *LocalDecl:
		b.WriteString("var ")
		write(b, n.Name)
		if n.Init != nil {
			b.WriteString(" = ")
			write(b, n.Init)
		}
	case *ExprStmt:
		write(b, n.X)
	case *If:
		writeHeader(b, "if", n.Cond)
	case *While:
		writeHeader(b, "while", n.Cond)
	case *Do:
		writeHeader(b, "do while", n.Cond)
	case *For:
		writeHeader(b, "for", n.Cond)
	case *ForEach:
		b.WriteString("foreach (")
		write(b, n.Collection)
		b.WriteByte(')')
	case *Switch:
		writeHeader(b, "switch", n.Tag)
	case *Return:
		writeJump(b, "return", n.Value)
	case *Throw:
		writeJump(b, "throw", n.Value)
	case *Break:
		writeLabelJump(b, "break", n.Label)
	case *Continue:
		writeLabelJump(b, "continue", n.Label)
	case *Goto:
		writeLabelJump(b, "goto", n.Label)
	case *GotoCase:
		b.WriteString("goto case ")
		write(b, n.Value)
	case *GotoDefault:
		b.WriteString("goto default")
	case *Fallthrough:
		b.WriteString("fallthrough")
	case *YieldBreak:
		b.WriteString("yield break")
	case *Using:
		b.WriteString("using (")
		if n.Decl != nil {
			write(b, n.Decl)
		} else {
			write(b, n.Resource)
		}
		b.WriteByte(')')
	case *Lock:
		writeHeader(b, "lock", n.X)
	case *Fixed:
		b.WriteString("fixed")
	case *Labeled:
		b.WriteString(n.Label + ":")
	case *Block:
		b.WriteString("{...}")
	case *Empty:
		b.WriteByte(';')
	default:
		b.WriteString("?")
	}
}

func writeLiteral(b *strings.Builder, l *Literal) {
	switch l.Kind {
	case LitNull:
		if l.Value != "" {
			b.WriteString(l.Value)
			return
		}
		b.WriteString("null")
	case LitTrue:
		b.WriteString("true")
	case LitFalse:
		b.WriteString("false")
	case LitString:
		b.WriteString(strconv.Quote(l.Value))
	default:
		b.WriteString(l.Value)
	}
}

func writeList(b *strings.Builder, list []Expr) {
	for i, e := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		write(b, e)
	}
}

func writeHeader(b *strings.Builder, keyword string, cond Expr) {
	b.WriteString(keyword)
	if cond == nil {
		return
	}
	b.WriteString(" (")
	write(b, cond)
	b.WriteByte(')')
}

func writeJump(b *strings.Builder, keyword string, value Expr) {
	b.WriteString(keyword)
	if value != nil {
		b.WriteByte(' ')
		write(b, value)
	}
}

func writeLabelJump(b *strings.Builder, keyword, label string) {
	b.WriteString(keyword)
	if label != "" {
		b.WriteString(" " + label)
	}
}

func unaryText(op UnaryOp) string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	case OpDeref:
		return "*"
	case OpAddr:
		return "&"
	default:
		return "~"
	}
}
