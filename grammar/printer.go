package grammar

import (
	"fmt"
	"strings"
)

// Format renders a program in canonical layout: four-space indentation,
// one statement per line, single spaces around operators. Comments are
// not part of the tree and are dropped.
func Format(filename, source string) (string, error) {
	program, err := Parse(filename, source)
	if err != nil {
		return "", err
	}
	return program.String(), nil
}

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("begin {\n")
	for _, s := range p.Statements {
		b.WriteString(s.StringWithIndent(1))
	}
	b.WriteString("} end\n")
	return b.String()
}

func (s *Statement) StringWithIndent(level int) string {
	prefix := indent(level)
	switch {
	case s.Declaration != nil:
		return prefix + s.Declaration.String() + "\n"
	case s.Conditional != nil:
		return prefix + s.Conditional.StringWithIndent(level) + "\n"
	case s.While != nil:
		return fmt.Sprintf("%swhile (%s) %s\n", prefix, s.While.Condition, s.While.Body.StringWithIndent(level))
	case s.For != nil:
		return fmt.Sprintf("%sfor %s in %s %s\n", prefix, s.For.Iterator, s.For.Iterable, s.For.Body.StringWithIndent(level))
	case s.Print != nil:
		return prefix + s.Print.String() + "\n"
	case s.Pass != "":
		return prefix + s.Pass + ";\n"
	case s.Return != nil:
		return prefix + s.Return.String() + "\n"
	case s.Break:
		return prefix + "break;\n"
	case s.Continue:
		return prefix + "continue;\n"
	case s.Assignment != nil:
		return fmt.Sprintf("%s%s %s %s;\n", prefix, s.Assignment.Name, s.Assignment.Op, s.Assignment.Value)
	}
	return ""
}

func (d *Declaration) String() string {
	if d.Value == nil {
		return fmt.Sprintf("%s %s;", d.Type, d.Name)
	}
	return fmt.Sprintf("%s %s = %s;", d.Type, d.Name, d.Value)
}

func (c *Conditional) StringWithIndent(level int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "if (%s) %s", c.Condition, c.Then.StringWithIndent(level))
	for _, elif := range c.Elifs {
		fmt.Fprintf(&b, " elif (%s) %s", elif.Condition, elif.Body.StringWithIndent(level))
	}
	if c.Else != nil {
		fmt.Fprintf(&b, " else %s", c.Else.StringWithIndent(level))
	}
	return b.String()
}

// StringWithIndent renders the braces and body; the closing brace lines up
// with the statement that owns the block.
func (b *Block) StringWithIndent(level int) string {
	if len(b.Statements) == 0 {
		return "{ }"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString(s.StringWithIndent(level + 1))
	}
	sb.WriteString(indent(level) + "}")
	return sb.String()
}

func (p *Print) String() string {
	if p.Ident != nil {
		return fmt.Sprintf("print(%s);", *p.Ident)
	}
	return fmt.Sprintf("print(%s);", *p.Str)
}

func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}

func (b *BoolExpr) String() string {
	if b.Right == nil {
		return b.Left.String()
	}
	return fmt.Sprintf("%s %s %s", b.Left, b.Op, b.Right)
}

func (e *Expression) String() string {
	var b strings.Builder
	b.WriteString(e.Left.String())
	for _, op := range e.Ops {
		fmt.Fprintf(&b, " %s %s", op.Operator, op.Right)
	}
	return b.String()
}

func (t *Term) String() string {
	switch {
	case t.Ident != nil:
		return *t.Ident
	case t.Number != nil:
		return *t.Number
	case t.Float != nil:
		return *t.Float
	case t.Str != nil:
		return *t.Str
	case t.Char != nil:
		return *t.Char
	case t.Bool != nil:
		return *t.Bool
	case t.Range != nil:
		return fmt.Sprintf("range(%s)", t.Range)
	case t.List != nil:
		return t.List.String()
	case t.Paren != nil:
		return fmt.Sprintf("(%s)", t.Paren)
	}
	return ""
}

func (l *List) String() string {
	elems := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}
