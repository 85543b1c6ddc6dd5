package rebuild_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kiwiwarmnfuzzy/ptrnull/cxxtype"
	"github.com/kiwiwarmnfuzzy/ptrnull/kind"
	"github.com/kiwiwarmnfuzzy/ptrnull/rebuild"
	"github.com/kiwiwarmnfuzzy/ptrnull/resugar"
	"github.com/stretchr/testify/require"
)

func intTy() cxxtype.Type { return &cxxtype.BuiltinType{Name: "int"} }

func TestRebuild_SimplePointer(t *testing.T) {
	canonical := &cxxtype.PointerType{Pointee: intTy()}
	rebuilt, err := rebuild.Rebuild(canonical, kind.Vector{kind.NonNull})
	require.NoError(t, err)
	attributed, ok := rebuilt.(*cxxtype.AttributedType)
	require.True(t, ok)
	require.Equal(t, cxxtype.AttrNonnull, attributed.Attr)
}

func TestRebuild_UnspecifiedDoesNotWrap(t *testing.T) {
	canonical := &cxxtype.PointerType{Pointee: intTy()}
	rebuilt, err := rebuild.Rebuild(canonical, kind.Vector{kind.Unspecified})
	require.NoError(t, err)
	_, isPointer := rebuilt.(*cxxtype.PointerType)
	require.True(t, isPointer, "unspecified entries must not be wrapped in AttributedType")
}

func TestRebuild_LengthMismatch(t *testing.T) {
	canonical := &cxxtype.PointerType{Pointee: intTy()}
	_, err := rebuild.Rebuild(canonical, kind.Vector{})
	require.ErrorIs(t, err, rebuild.ErrVectorLengthMismatch)

	_, err = rebuild.Rebuild(canonical, kind.Vector{kind.NonNull, kind.Nullable})
	require.ErrorIs(t, err, rebuild.ErrVectorLengthMismatch)
}

func TestRebuild_RoundTrip(t *testing.T) {
	// spec.md §8 "Round-trip": for a canonical type T and any vector v of
	// the correct length, walking the rebuilt type reproduces v.
	cases := []struct {
		name string
		t    cxxtype.Type
		v    kind.Vector
	}{
		{"single pointer", &cxxtype.PointerType{Pointee: intTy()}, kind.Vector{kind.NonNull}},
		{"double pointer", &cxxtype.PointerType{Pointee: &cxxtype.PointerType{Pointee: intTy()}}, kind.Vector{kind.Nullable, kind.NonNull}},
		{"function proto", &cxxtype.FunctionProtoType{
			Return: &cxxtype.PointerType{Pointee: intTy()},
			Params: []cxxtype.Type{&cxxtype.PointerType{Pointee: intTy()}},
		}, kind.Vector{kind.NonNull, kind.Nullable}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rebuilt, err := rebuild.Rebuild(c.t, c.v)
			require.NoError(t, err)
			got, err := resugar.GetAnnotations(rebuilt, nil)
			require.NoError(t, err)
			if diff := cmp.Diff(c.v, got); diff != "" {
				t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRebuild_RecordWithSpecialization(t *testing.T) {
	templ := &cxxtype.ClassTemplateDecl{Name: "P"}
	rd := &cxxtype.RecordDecl{
		Name: "P",
		Spec: &cxxtype.ClassTemplateSpecInfo{
			TemplateDecl: templ,
			Args: []cxxtype.TemplateArgument{
				{Kind: cxxtype.TemplateArgType, Type: &cxxtype.PointerType{Pointee: intTy()}},
				{Kind: cxxtype.TemplateArgType, Type: &cxxtype.PointerType{Pointee: intTy()}},
			},
		},
	}
	canonical := &cxxtype.RecordType{Decl: rd}
	rebuilt, err := rebuild.Rebuild(canonical, kind.Vector{kind.Nullable, kind.NonNull})
	require.NoError(t, err)

	spec, ok := rebuilt.(*cxxtype.ClassTemplateSpecializationType)
	require.True(t, ok)
	require.Len(t, spec.Args, 2)

	s := rebuild.PrintType(rebuilt)
	require.Contains(t, s, "_Nullable")
	require.Contains(t, s, "_Nonnull")
}

func TestPrint_Pointer(t *testing.T) {
	canonical := &cxxtype.PointerType{Pointee: intTy()}
	s, err := rebuild.Print(canonical, kind.Vector{kind.NonNull})
	require.NoError(t, err)
	require.Equal(t, "int * _Nonnull", s)
}
