package ast

import (
	"fmt"
	"strings"
)

// Print renders a File back to source-shaped text. It is idempotent
// modulo source-location fields (Q5): Print(Parse(Print(f))) == Print(f).
func Print(f *File) string {
	var sb strings.Builder
	if f.ModuleName != "" {
		fmt.Fprintf(&sb, "module %s;\n", f.ModuleName)
	}
	for _, imp := range f.Imports {
		fmt.Fprintf(&sb, "import %s;\n", imp.Name)
	}
	for _, d := range f.Decls {
		sb.WriteString(printDecl(d))
		sb.WriteString("\n")
	}
	return sb.String()
}

func printType(t *TypeExpr) string {
	if t == nil {
		return "void"
	}
	if t.IsFunc {
		params := make([]string, len(t.FuncParams))
		for i, p := range t.FuncParams {
			params[i] = printType(p)
		}
		if t.FuncVariadic {
			params = append(params, "...")
		}
		return fmt.Sprintf("fn*%s(%s)", printType(t.FuncReturn), strings.Join(params, ", "))
	}
	s := t.Name + strings.Repeat("*", t.PointerDepth)
	for _, d := range t.ArrayDims {
		s += fmt.Sprintf("[%d]", d)
	}
	return s
}

func printDecl(d Decl) string {
	switch n := d.(type) {
	case *VarDecl:
		return printVarDecl(n) + ";"
	case *FunctionDecl:
		return printFuncDecl(n)
	case *StructDecl:
		return printStructDecl(n)
	case *EnumDecl:
		return printEnumDecl(n)
	case *ExternBlock:
		return printExternBlock(n)
	default:
		return fmt.Sprintf("/* unknown decl %T */", d)
	}
}

func printVarDecl(v *VarDecl) string {
	kw := "var"
	if v.Const {
		kw = "const"
	}
	prefix := ""
	if v.Exported {
		prefix = "export "
	}
	s := fmt.Sprintf("%s%s %s %s", prefix, kw, printType(v.Type), v.Name)
	if v.Initializer != nil {
		s += " = " + printExpr(v.Initializer)
	}
	return s
}

func printFuncDecl(fn *FunctionDecl) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		pfx := ""
		if p.Const {
			pfx = "const "
		}
		params[i] = fmt.Sprintf("%s%s %s", pfx, printType(p.Type), p.Name)
	}
	if fn.Variadic {
		params = append(params, "...")
	}
	prefix := ""
	if fn.Exported {
		prefix = "export "
	}
	head := fmt.Sprintf("%sfn %s %s(%s)", prefix, printType(fn.ReturnType), fn.Name, strings.Join(params, ", "))
	if fn.Body == nil {
		return head + ";"
	}
	return head + " " + printBlock(fn.Body)
}

func printExternBlock(e *ExternBlock) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "extern %q {\n", e.Library)
	for _, fn := range e.Funcs {
		sb.WriteString("  " + printFuncDecl(fn) + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func printStructDecl(s *StructDecl) string {
	var sb strings.Builder
	prefix := ""
	if s.Exported {
		prefix = "export "
	}
	fmt.Fprintf(&sb, "%sstruct %s {\n", prefix, s.Name)
	for _, f := range s.Fields {
		fmt.Fprintf(&sb, "  %s %s;\n", printType(f.Type), f.Name)
	}
	sb.WriteString("}")
	return sb.String()
}

func printEnumDecl(e *EnumDecl) string {
	var sb strings.Builder
	prefix := ""
	if e.Exported {
		prefix = "export "
	}
	underlying := "i32"
	if e.Underlying != nil {
		underlying = printType(e.Underlying)
	}
	fmt.Fprintf(&sb, "%senum %s : %s {\n", prefix, e.Name, underlying)
	for _, m := range e.Members {
		if m.Value != nil {
			fmt.Fprintf(&sb, "  %s = %s,\n", m.Name, printExpr(m.Value))
		} else {
			fmt.Fprintf(&sb, "  %s,\n", m.Name)
		}
	}
	sb.WriteString("}")
	return sb.String()
}

func printBlock(b *Block) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString("  " + printStmt(s) + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func printStmt(s Stmt) string {
	switch n := s.(type) {
	case *Block:
		return printBlock(n)
	case *DeclStmt:
		return printVarDecl(n.Decl) + ";"
	case *Assignment:
		return fmt.Sprintf("%s%s = %s;", strings.Repeat("*", n.DerefCount), printExpr(n.Target), printExpr(n.Rhs))
	case *ReturnStmt:
		if n.Value == nil {
			return "return;"
		}
		return "return " + printExpr(n.Value) + ";"
	case *IfStmt:
		s := fmt.Sprintf("if (%s) %s", printExpr(n.Cond), printBlock(n.Then))
		if n.ElseIf != nil {
			s += " else " + printStmt(n.ElseIf)
		} else if n.Else != nil {
			s += " else " + printBlock(n.Else)
		}
		return s
	case *WhileStmt:
		return fmt.Sprintf("while (%s) %s", printExpr(n.Cond), printBlock(n.Body))
	case *ForStmt:
		incr := ""
		if n.Increment != nil {
			incr = strings.TrimSuffix(printStmt(n.Increment), ";")
		}
		cond := ""
		if n.Cond != nil {
			cond = printExpr(n.Cond)
		}
		return fmt.Sprintf("for (%s; %s; %s) %s", printVarDecl(n.Counter), cond, incr, printBlock(n.Body))
	case *ExprStmt:
		return printExpr(n.Value) + ";"
	case *DeferStmt:
		return "defer " + printExpr(n.Call) + ";"
	case *SwitchStmt:
		var sb strings.Builder
		fmt.Fprintf(&sb, "switch (%s) {\n", printExpr(n.Subject))
		for _, c := range n.Cases {
			if c.Value == nil {
				sb.WriteString("  default:\n")
			} else {
				fmt.Fprintf(&sb, "  case %s:\n", printExpr(c.Value))
			}
			for _, st := range c.Body {
				sb.WriteString("    " + printStmt(st) + "\n")
			}
		}
		sb.WriteString("}")
		return sb.String()
	default:
		return fmt.Sprintf("/* unknown stmt %T */", s)
	}
}

func printExpr(e Expr) string {
	switch n := e.(type) {
	case *NumberLiteral:
		return n.Text
	case *StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *CharLiteral:
		return fmt.Sprintf("'%c'", n.Value)
	case *DeclRefExpr:
		if n.Module != "" {
			return n.Module + "::" + n.Name
		}
		return n.Name
	case *MemberAccess:
		return printExpr(n.Base) + "." + strings.Join(n.Fields, ".")
	case *ArrayElementAccess:
		s := printExpr(n.Base)
		for _, idx := range n.Indices {
			s += "[" + printExpr(idx) + "]"
		}
		return s
	case *CallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = printExpr(a)
		}
		return fmt.Sprintf("%s(%s)", printExpr(n.Callee), strings.Join(args, ", "))
	case *StructLiteralExpr:
		parts := make([]string, len(n.Inits))
		for i, init := range n.Inits {
			switch {
			case init.Value == nil:
				parts[i] = "." + init.FieldName
			case init.FieldName != "":
				parts[i] = "." + init.FieldName + " = " + printExpr(init.Value)
			default:
				parts[i] = printExpr(init.Value)
			}
		}
		return ".{" + strings.Join(parts, ", ") + "}"
	case *ArrayLiteralExpr:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = printExpr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *EnumElementAccess:
		return n.EnumName + "::" + n.Member
	case *GroupingExpr:
		return "(" + printExpr(n.Inner) + ")"
	case *BinaryOperator:
		return fmt.Sprintf("%s %s %s", printExpr(n.Lhs), n.Op, printExpr(n.Rhs))
	case *UnaryOperator:
		return fmt.Sprintf("%s%s", n.Op, printExpr(n.Rhs))
	case *ExplicitCast:
		return fmt.Sprintf("(%s)%s", printType(n.TargetType), printExpr(n.Rhs))
	case *NullExpr:
		return "null"
	case *SizeofExpr:
		return "sizeof(" + printType(n.Type) + ")"
	case *AlignofExpr:
		return "alignof(" + printType(n.Type) + ")"
	default:
		return fmt.Sprintf("/* unknown expr %T */", e)
	}
}
