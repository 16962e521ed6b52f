package vmp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contract-patterns/vmp-go-base/program"
)

func Test_ParseConditions(t *testing.T) {
	ph := randomBytes32(t)
	output := program.List(
		program.List(program.FromInt(CreateCoin), program.FromBytes32(ph), program.FromInt(100)),
		program.List(program.FromInt(Remark)),
		program.Cons(program.FromInt(CreateCoinAnnouncement), program.Cons(program.FromInt(9), program.FromInt(1))),
	)

	conds, err := ParseConditions(output)
	require.NoError(t, err)
	require.Len(t, conds, 3)
	require.EqualValues(t, CreateCoin, conds[0].Opcode)
	require.Len(t, conds[0].Args, 2)
	require.True(t, conds[0].AsProgram().Equal(program.List(program.FromInt(CreateCoin), program.FromBytes32(ph), program.FromInt(100))))
	require.EqualValues(t, Remark, conds[1].Opcode)
	require.Empty(t, conds[1].Args)
	require.Len(t, conds[2].Args, 1)

	conds, err = ParseConditions(program.Nil)
	require.NoError(t, err)
	require.Empty(t, conds)

	_, err = ParseConditions(program.FromInt(1))
	require.ErrorIs(t, err, program.ErrImproperList)
	_, err = ParseConditions(program.List(program.FromInt(51)))
	require.ErrorIs(t, err, program.ErrNotPair)
	_, err = ParseConditions(program.List(program.List(program.List(program.FromInt(51)))))
	require.ErrorIs(t, err, program.ErrNotAtom)
}

func Test_NamespacedAnnouncementMessage(t *testing.T) {
	msg := NamespacedAnnouncementMessage(InnerPuzzlePrefix, []byte{0xaa, 0xbb})
	require.Equal(t, append([]byte("namespaces"), 0x01, 0xaa, 0xbb), msg)
	require.Len(t, NamespacePrefix, 10)
}

func Test_CheckInnerConditions(t *testing.T) {
	announce := func(op int64, msg []byte) *program.Program {
		return program.List(program.FromInt(op), program.NewAtom(msg))
	}
	h := randomBytes32(t)

	cases := []struct {
		name   string
		output *program.Program
		err    error
	}{
		{"no conditions", program.Nil, nil},
		{"create coin", program.List(program.List(program.FromInt(CreateCoin), program.FromBytes32(h), program.FromInt(1))), nil},
		{"plain announcement", program.List(announce(CreateCoinAnnouncement, h[:])), nil},
		{"inner puzzle namespace", program.List(announce(CreateCoinAnnouncement, NamespacedAnnouncementMessage(InnerPuzzlePrefix, h[:]))), nil},
		{"remark with prefix", program.List(announce(Remark, NamespacedAnnouncementMessage(0x02, h[:]))), nil},
		{"coin announcement in reserved namespace", program.List(announce(CreateCoinAnnouncement, NamespacedAnnouncementMessage(0x02, h[:]))), ErrReservedAnnouncement},
		{"puzzle announcement in reserved namespace", program.List(
			announce(CreateCoinAnnouncement, h[:]),
			announce(CreatePuzzleAnnouncement, NamespacedAnnouncementMessage(0x00, nil)),
		), ErrReservedAnnouncement},
		{"bare prefix", program.List(announce(CreatePuzzleAnnouncement, []byte(NamespacePrefix))), ErrReservedAnnouncement},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckInnerConditions(tc.output)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func Test_SecurityCondition(t *testing.T) {
	s := newTestSpend(t, newTestTypes(t, 1)...)
	s.TypeAdditions = []TypeChange{launch(newTestType(t))}
	cond := SecurityCondition(s)

	conds, err := ParseConditions(program.List(cond))
	require.NoError(t, err)
	require.EqualValues(t, Remark, conds[0].Opcode)
	h, err := conds[0].Args[0].AsBytes32()
	require.NoError(t, err)
	require.Equal(t, s.SecurityHash(), h)
}
