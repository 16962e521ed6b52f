package vmp

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contract-patterns/vmp-go-base/hash"
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
)

var (
	testTemplate = NewTemplate(program.List(program.FromInt(2), program.FromInt(5), program.NewAtom([]byte("meta"))))
	// "anyone can spend" inner puzzle, returns the solution as conditions
	acs = program.FromInt(1)
)

func randomBytes32(t *testing.T) types.Bytes32 {
	var b types.Bytes32
	_, err := rand.Read(b[:])
	require.NoError(t, err)
	return b
}

func newTestType(t *testing.T) AssetType {
	return AssetType{
		LauncherHash: randomBytes32(t),
		Environment:  program.Nil,
		PreValidator: program.List(program.NewAtom([]byte("pre validator"))),
		Validator:    program.List(program.NewAtom([]byte("validator"))),
		RemoverHash:  randomBytes32(t),
	}
}

func newTestTypes(t *testing.T, n int) []AssetType {
	res := make([]AssetType, n)
	for i := range res {
		res[i] = newTestType(t)
	}
	return res
}

func Test_AssetType(t *testing.T) {
	t.Parallel()

	at := newTestType(t)
	at.Environment = program.List(program.FromInt(42))

	t.Run("commitment form", func(t *testing.T) {
		exp := program.List(
			program.FromBytes32(at.LauncherHash),
			at.Environment,
			program.FromBytes32(at.PreValidator.TreeHash()),
			program.FromBytes32(at.Validator.TreeHash()),
			program.FromBytes32(at.RemoverHash),
		)
		require.True(t, exp.Equal(at.AsProgram()), "got %s", at.AsProgram())
		require.Equal(t, exp.TreeHash(), at.TreeHash())
		require.Equal(t, at.PreValidator.TreeHash(), at.PreValidatorHash())
		require.Equal(t, at.Validator.TreeHash(), at.ValidatorHash())
	})

	t.Run("inline form", func(t *testing.T) {
		exp := program.List(
			program.FromBytes32(at.LauncherHash),
			at.Environment,
			at.PreValidator,
			at.Validator,
			program.FromBytes32(at.RemoverHash),
		)
		require.True(t, exp.Equal(at.AsInlineProgram()), "got %s", at.AsInlineProgram())
		rest, err := exp.Rest()
		require.NoError(t, err)
		require.True(t, rest.Equal(at.InlineTail()))
		require.NotEqual(t, at.TreeHash(), at.AsInlineProgram().TreeHash())
	})

	t.Run("matching", func(t *testing.T) {
		other := at
		require.True(t, at.Equal(other))

		other.Environment = program.Nil
		require.False(t, at.Equal(other))
		require.True(t, at.Matches(other, IgnoreEnvironment))
		require.False(t, at.Matches(other, IgnoreRemover))

		other.RemoverHash = randomBytes32(t)
		require.False(t, at.Matches(other, IgnoreEnvironment))
		require.True(t, at.Matches(other, IgnoreEnvironment|IgnoreRemover))

		other.Validator = program.FromInt(7)
		require.False(t, at.Matches(other, IgnoreEnvironment|IgnoreRemover))

		other = at
		other.LauncherHash = randomBytes32(t)
		require.False(t, at.Matches(other, IgnoreEnvironment|IgnoreRemover))
	})

	t.Run("nil environment", func(t *testing.T) {
		a := newTestType(t)
		b := a
		a.Environment = nil
		require.True(t, a.Equal(b))
		require.Equal(t, a.TreeHash(), b.TreeHash())
	})
}

func Test_VMP_Construct(t *testing.T) {
	t.Parallel()

	for n := range 4 {
		t.Run(fmt.Sprintf("%d types", n), func(t *testing.T) {
			v := testTemplate.New(acs, newTestTypes(t, n)...)
			puzzle := v.Construct()
			require.Equal(t, puzzle.TreeHash(), v.TreeHash())

			mod, args, err := program.Uncurry(puzzle)
			require.NoError(t, err)
			require.True(t, testTemplate.Mod.Equal(mod))
			require.Len(t, args, 3)
			require.True(t, program.FromBytes32(testTemplate.ModHash).Equal(args[0]))
			require.Equal(t, n, args[1].ListLen())
			require.Equal(t, v.TypesHash(), args[1].TreeHash())
			require.True(t, acs.Equal(args[2]))
		})
	}

	t.Run("types hash of empty list", func(t *testing.T) {
		v := testTemplate.New(acs)
		require.EqualValues(t, hash.NilTreeHash, v.TypesHash())
	})

	t.Run("type order matters", func(t *testing.T) {
		tt := newTestTypes(t, 2)
		a := testTemplate.New(acs, tt[0], tt[1])
		b := testTemplate.New(acs, tt[1], tt[0])
		require.NotEqual(t, a.TreeHash(), b.TreeHash())
		require.NotEqual(t, a.TypesHash(), b.TypesHash())
		require.Equal(t, 1, b.IndexOf(tt[0]))
		require.Equal(t, -1, b.IndexOf(newTestType(t)))
	})
}

func Test_GetTypeProof(t *testing.T) {
	t.Parallel()

	t.Run("every subset of every list", func(t *testing.T) {
		for n := range 5 {
			list := newTestTypes(t, n)
			v := testTemplate.New(acs, list...)
			for mask := range 1 << n {
				var subset []AssetType
				last := -1
				for i := range n {
					if mask&(1<<i) != 0 {
						subset = append(subset, list[i])
						last = i
					}
				}
				tp := v.GetTypeProof(subset...)
				require.Equal(t, v.TypesHash(), tp.TypesHash(), "n=%d mask=%b", n, mask)
				require.Equal(t, v.TreeHash(), tp.PuzzleHash(), "n=%d mask=%b", n, mask)
				require.Len(t, tp.Types, last+1)
				require.Equal(t, last == n-1, tp.Rolled == nil, "n=%d mask=%b", n, mask)
				for _, s := range subset {
					require.True(t, tp.Contains(s, MatchStrict))
				}
			}
		}
	})

	t.Run("empty subset rolls the whole list", func(t *testing.T) {
		v := testTemplate.New(acs, newTestTypes(t, 3)...)
		tp := v.GetTypeProof()
		require.Empty(t, tp.Types)
		require.NotNil(t, tp.Rolled)
		require.Equal(t, v.TypesHash(), *tp.Rolled)
		require.True(t, program.List(
			program.FromBytes32(testTemplate.ModHash),
			program.FromBytes32(acs.TreeHash()),
			program.FromBytes32(v.TypesHash()),
		).Equal(tp.AsProgram()))
	})

	t.Run("full list", func(t *testing.T) {
		list := newTestTypes(t, 3)
		v := testTemplate.New(acs, list...)
		tp := v.GetTypeProof(list[2])
		require.Nil(t, tp.Rolled)
		require.Len(t, tp.Types, 3)
		// nil terminated list, same as the curried type list
		partial, err := tp.AsProgram().At("rrf")
		require.NoError(t, err)
		require.True(t, v.typeList().Equal(partial))
	})

	t.Run("empty list", func(t *testing.T) {
		v := testTemplate.New(acs)
		tp := v.GetTypeProof(newTestType(t))
		require.Empty(t, tp.Types)
		require.Nil(t, tp.Rolled)
		require.EqualValues(t, hash.NilTreeHash, tp.TypesHash())
		require.Equal(t, v.TreeHash(), tp.PuzzleHash())
	})

	t.Run("unrelated type is not proven", func(t *testing.T) {
		list := newTestTypes(t, 2)
		v := testTemplate.New(acs, list...)
		tp := v.GetTypeProof(list[0])
		require.Len(t, tp.Types, 1)
		require.NotNil(t, tp.Rolled)
		require.True(t, tp.Contains(list[0], MatchStrict))
		require.False(t, tp.Contains(list[1], MatchStrict))
	})
}

func Test_LineageProof(t *testing.T) {
	list := newTestTypes(t, 2)
	v := testTemplate.New(acs, list...)
	coin := types.NewCoin(randomBytes32(t), v.TreeHash(), 1000)

	lp := NewLineageProof(coin, v)
	require.Equal(t, coin.ParentID, lp.ParentID)
	require.Equal(t, v.TypesHash(), lp.TypesHash)
	require.Equal(t, acs.TreeHash(), lp.InnerPuzzleHash)
	require.EqualValues(t, 1000, lp.Amount)

	exp := program.List(
		program.FromBytes32(coin.ParentID),
		program.FromBytes32(v.TypesHash()),
		program.FromBytes32(acs.TreeHash()),
		program.FromInt(1000),
	)
	require.True(t, exp.Equal(lp.AsProgram()))
}
