// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/golangee/concrete/ast"
	"github.com/golangee/concrete/token"
	"github.com/golangee/concrete/util"
)

func parseOne(t *testing.T, src string) *ast.Module {
	t.Helper()

	cu, err := Parse("test.l", []byte(src))
	require.NoError(t, err)
	require.Len(t, cu.Modules, 1)

	return cu.Modules[0]
}

// Scenario 1: an empty module parses to a Module with no contents.
func TestParserEmptyModule(t *testing.T) {
	mod := parseOne(t, "mod a {}")

	require.Equal(t, "a", mod.Name.Name)
	require.Empty(t, mod.Contents)
}

// Scenario 2: `1 + 2 * 3` nests as BinaryOp(1, +, BinaryOp(2, *, 3)) —
// `*` binds tighter than `+` despite both living below comparisons in
// the inverted precedence table.
func TestParserArithmeticPrecedence(t *testing.T) {
	mod := parseOne(t, "mod a { const X: i32 = 1 + 2 * 3; }")

	item := mod.Contents[0].Get()
	constItem, ok := (*item).(*ast.ConstantItem)
	require.True(t, ok)

	top, ok := constItem.Decl.Value.(*ast.BinaryOpExpr)
	require.True(t, ok)
	require.Equal(t, ast.BinAdd, top.Op)

	lhs, ok := top.Lhs.(*ast.ValueExprNode)
	require.True(t, ok)
	require.Equal(t, int64(1), lhs.Value.Int.Int64())

	rhs, ok := top.Rhs.(*ast.BinaryOpExpr)
	require.True(t, ok)
	require.Equal(t, ast.BinMul, rhs.Op)
}

// Scenario 3: a turbofish call `f::<i32>(1)` carries its generic
// argument separately from a plain comparison `a < b`.
func TestParserTurbofishCallVsComparison(t *testing.T) {
	mod := parseOne(t, `mod a {
		fn g() -> i32 {
			f::<i32>(1);
			return a < b;
		}
	}`)

	fn := (*mod.Contents[0].Get()).(*ast.FunctionItem)
	body := fn.Def.Body
	require.Len(t, body, 2)

	callStmt, ok := body[0].(*ast.FnCallStmt)
	require.True(t, ok)
	require.Equal(t, "f", callStmt.Call.Target.Name)
	require.Len(t, callStmt.Call.Generics, 1)
	named, ok := callStmt.Call.Generics[0].(*ast.NamedType)
	require.True(t, ok)
	require.Equal(t, "i32", named.Name.Name.Name)
	require.Len(t, callStmt.Call.Args, 1)

	ret, ok := body[1].(*ast.ReturnStmt)
	require.True(t, ok)
	cmp, ok := ret.Value.(*ast.BinaryOpExpr)
	require.True(t, ok)
	require.Equal(t, ast.BinLt, cmp.Op)
}

// Scenario 4: `fn g<T: Add + Copy>(...)` attaches both bounds to the
// one generic parameter.
func TestParserGenericBounds(t *testing.T) {
	mod := parseOne(t, `mod a {
		fn g<T: Add + Copy>(x: T) -> T {
			return x;
		}
	}`)

	fn := (*mod.Contents[0].Get()).(*ast.FunctionItem)
	require.Len(t, fn.Def.Decl.GenericParms, 1)

	param := fn.Def.Decl.GenericParms[0]
	require.Equal(t, "T", param.Name.Name)
	require.Len(t, param.Bounds, 2)
	require.Equal(t, "Add", param.Bounds[0].Name.Name)
	require.Equal(t, "Copy", param.Bounds[1].Name.Name)
}

// Scenario 5: an enum match pattern `E#A { x }` binds a field; a
// variant with no fields, `E#B`, carries no binds.
func TestParserEnumMatchPattern(t *testing.T) {
	mod := parseOne(t, `mod a {
		fn g(e: E) -> i32 {
			match e {
				E#A { x } => { return x; },
				E#B => { return 0; },
			}
		}
	}`)

	fn := (*mod.Contents[0].Get()).(*ast.FunctionItem)
	require.Len(t, fn.Def.Body, 1)

	matchStmt, ok := fn.Def.Body[0].(*ast.MatchStmt)
	require.True(t, ok)
	require.Len(t, matchStmt.Match.Variants, 2)

	first := matchStmt.Match.Variants[0]
	require.NotNil(t, first.EnumPattern)
	require.Equal(t, "E", first.EnumPattern.Type.Name.Name)
	require.Equal(t, "A", first.EnumPattern.Variant.Name)
	require.Len(t, first.EnumPattern.Binds, 1)
	require.Equal(t, "x", first.EnumPattern.Binds[0].Name)

	second := matchStmt.Match.Variants[1]
	require.NotNil(t, second.EnumPattern)
	require.Equal(t, "B", second.EnumPattern.Variant.Name)
	require.Empty(t, second.EnumPattern.Binds)
}

// Scenario 6: an impl method taking `&mut self` assigns through self
// in its body; self normalises into a plain Ident lvalue with
// Derefs == 0.
func TestParserImplMutSelfAssign(t *testing.T) {
	mod := parseOne(t, `mod a {
		impl A {
			pub fn set(&mut self, v: i32) {
				self.a = v;
			}
		}
	}`)

	implItem := (*mod.Contents[0].Get()).(*ast.ImplItem)
	require.Len(t, implItem.Block.Methods, 1)

	method := implItem.Block.Methods[0]
	require.Len(t, method.Decl.Params, 2)

	self := method.Decl.Params[0]
	require.Equal(t, "self", self.Name.Name)
	selfType, ok := self.Type.(*ast.SelfType)
	require.True(t, ok)
	require.True(t, selfType.IsRef)
	require.True(t, selfType.IsMut)

	require.Len(t, method.Body, 1)
	assign, ok := method.Body[0].(*ast.AssignStmt)
	require.True(t, ok)
	require.Equal(t, 0, assign.Derefs)
	require.Equal(t, "self", assign.Lvalue.First.Name)
	require.Len(t, assign.Lvalue.Extra, 1)
	field, ok := assign.Lvalue.Extra[0].(*ast.FieldAccessSegment)
	require.True(t, ok)
	require.Equal(t, "a", field.Name.Name)

	rhsPath, ok := assign.Rhs.(*ast.PathExpr)
	require.True(t, ok)
	require.Equal(t, "v", rhsPath.Path.First.Name)
}

func TestParserAssocMethodCallAndEnumInit(t *testing.T) {
	mod := parseOne(t, `mod a {
		fn g() -> E {
			let x: E = E#make(1);
			return E#A { x: 1 };
		}
	}`)

	fn := (*mod.Contents[0].Get()).(*ast.FunctionItem)
	require.Len(t, fn.Def.Body, 2)

	letStmt, ok := fn.Def.Body[0].(*ast.LetStmt)
	require.True(t, ok)
	assoc, ok := letStmt.Rhs.(*ast.AssocMethodCallExpr)
	require.True(t, ok)
	require.Equal(t, "E", assoc.Type.Name.Name)
	require.Equal(t, "make", assoc.Call.Name.Name)

	ret, ok := fn.Def.Body[1].(*ast.ReturnStmt)
	require.True(t, ok)
	enumInit, ok := ret.Value.(*ast.EnumInitExpr)
	require.True(t, ok)
	require.Equal(t, "E", enumInit.Type.Name.Name)
	require.Equal(t, "A", enumInit.Variant.Name)
	require.Len(t, enumInit.Fields, 1)
}

func TestParserForLoopThreeForms(t *testing.T) {
	mod := parseOne(t, `mod a {
		fn g() {
			for (let mut i: i32 = 0; i < 10; i = i + 1) {
				return;
			}
			for (true) {
				return;
			}
			for {
				return;
			}
		}
	}`)

	fn := (*mod.Contents[0].Get()).(*ast.FunctionItem)
	require.Len(t, fn.Def.Body, 3)

	cStyle, ok := fn.Def.Body[0].(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, cStyle.Init)
	require.NotNil(t, cStyle.Cond)
	require.NotNil(t, cStyle.Post)

	condOnly, ok := fn.Def.Body[1].(*ast.ForStmt)
	require.True(t, ok)
	require.Nil(t, condOnly.Init)
	require.NotNil(t, condOnly.Cond)
	require.Nil(t, condOnly.Post)

	infinite, ok := fn.Def.Body[2].(*ast.ForStmt)
	require.True(t, ok)
	require.Nil(t, infinite.Init)
	require.Nil(t, infinite.Cond)
	require.Nil(t, infinite.Post)
}

// `#[langitem = "..."]` is parsed but never interpreted (spec §9); a
// downstream consumer is expected to retrieve it by name via
// util.AttributeList rather than re-scanning Attributes by hand.
func TestParserLangitemAttributeRetrievable(t *testing.T) {
	mod := parseOne(t, `mod a {
		#[langitem = "bool"]
		#[repr]
		struct Bool {
			v: i32,
		}
	}`)

	structItem := (*mod.Contents[0].Get()).(*ast.StructItem)

	attrs := util.NewAttributeList(structItem.Decl.Attributes)
	require.Equal(t, 2, attrs.Len())
	require.True(t, attrs.Has("langitem"))
	require.Equal(t, []string{"bool"}, attrs.Values("langitem"))

	repr := attrs.Get("repr")
	require.NotNil(t, repr)
	require.Nil(t, repr.Value)
}

func TestParserWithFilenameOption(t *testing.T) {
	cu, err := Parse("original.l", []byte("mod a {}"), WithFilename("renamed.l"))
	require.NoError(t, err)
	require.Equal(t, "renamed.l", cu.Modules[0].FilePath)
}

func TestParserTruncatedInputReportsUnexpectedEOF(t *testing.T) {
	_, err := Parse("truncated.l", []byte("mod a { fn f("))

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, UnexpectedEOF, perr.Kind)
}

func TestParserErrorExplain(t *testing.T) {
	src := []byte("mod a { fn }")
	_, err := Parse("bad.l", src)
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)

	explained := Explain(err, token.NewFile("bad.l", src))
	require.Contains(t, explained, "bad.l")
}

func TestParserStructInitRequiresParensInCondition(t *testing.T) {
	mod := parseOne(t, `mod a {
		fn g() {
			if (P { x: 1 }) {
				return;
			}
		}
	}`)

	fn := (*mod.Contents[0].Get()).(*ast.FunctionItem)
	ifStmt, ok := fn.Def.Body[0].(*ast.IfStmt)
	require.True(t, ok)

	structInit, ok := ifStmt.If.Cond.(*ast.StructInitExpr)
	require.True(t, ok)
	require.Equal(t, "P", structInit.Type.Name.Name)
}
