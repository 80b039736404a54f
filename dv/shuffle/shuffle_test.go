package shuffle

import (
	"testing"

	"github.com/JohnstonJ/dv"
)

func TestBuildIsABijection(t *testing.T) {
	for _, system := range []dv.System{dv.System525_60, dv.System625_50} {
		t.Run(system.String(), func(t *testing.T) {
			table := Build(system)
			seen := make(map[Position]int, table.Len())
			for n := 0; n < table.Len(); n++ {
				pos := table.Sample(n)
				if prev, ok := seen[pos]; ok {
					t.Fatalf("sample %d and %d both map to position %+v", prev, n, pos)
				}
				seen[pos] = n

				back, ok := table.SampleNumber(pos)
				if !ok || back != n {
					t.Fatalf("SampleNumber(%+v) = (%d, %v), want (%d, true)", pos, back, ok, n)
				}
			}
		})
	}
}

func TestBuildStaysWithinTrackAndBlockBounds(t *testing.T) {
	system := dv.System525_60
	table := Build(system)
	tracks := system.Tracks()
	for n := 0; n < table.Len(); n++ {
		pos := table.Sample(n)
		if pos.DIFSequence < 0 || pos.DIFSequence >= tracks {
			t.Fatalf("sample %d has out-of-range DIF sequence %d", n, pos.DIFSequence)
		}
		if pos.DIFBlock < 0 || pos.DIFBlock > 8 {
			t.Fatalf("sample %d has out-of-range DIF block %d", n, pos.DIFBlock)
		}
		if pos.ByteOffset < 0 || pos.ByteOffset+BytesPerSample > 72 {
			t.Fatalf("sample %d has out-of-range byte offset %d", n, pos.ByteOffset)
		}
	}
}
