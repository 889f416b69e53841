package scores

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardKeepsTopTen(t *testing.T) {
	b := NewBoard(MaxEntries, nil)
	for score := 100; score >= 0; score -= 10 {
		b.Insert(Record{Score: score, Time: float64(score) / 10})
	}

	list := b.List()
	require.Len(t, list, 10)
	for i, r := range list {
		assert.Equal(t, 100-i*10, r.Score)
	}
	for _, r := range list {
		assert.NotEqual(t, 0, r.Score, "lowest score dropped")
	}
}

func TestBoardInsertSorts(t *testing.T) {
	b := NewBoard(3, nil)
	b.Insert(Record{Score: 10})
	b.Insert(Record{Score: 30})
	got := b.Insert(Record{Score: 20})
	assert.Equal(t, []Record{{Score: 30}, {Score: 20}, {Score: 10}}, got)

	got = b.Insert(Record{Score: 5})
	assert.Equal(t, []Record{{Score: 30}, {Score: 20}, {Score: 10}}, got, "below the cut is discarded")
}

func TestBoardTiesKeepArrivalOrder(t *testing.T) {
	b := NewBoard(MaxEntries, nil)
	b.Insert(Record{Score: 50, Time: 1})
	b.Insert(Record{Score: 50, Time: 2})
	b.Insert(Record{Score: 60, Time: 3})

	assert.Equal(t, []Record{{Score: 60, Time: 3}, {Score: 50, Time: 1}, {Score: 50, Time: 2}}, b.List())
}

func TestNewBoardNormalizesSeed(t *testing.T) {
	seed := make([]Record, 0, 15)
	for i := 0; i < 15; i++ {
		seed = append(seed, Record{Score: i})
	}
	b := NewBoard(MaxEntries, seed)
	list := b.List()
	require.Len(t, list, 10)
	assert.Equal(t, 14, list[0].Score)
	assert.Equal(t, 5, list[9].Score)
	assert.Equal(t, 0, seed[0].Score, "seed slice not reordered")
}

func TestBoardListIsCopy(t *testing.T) {
	b := NewBoard(MaxEntries, []Record{{Score: 1}})
	list := b.List()
	list[0].Score = 999
	assert.Equal(t, 1, b.List()[0].Score)
}

func TestBoardConcurrentInsert(t *testing.T) {
	b := NewBoard(MaxEntries, nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Insert(Record{Score: i})
			_ = b.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, b.Len())
	assert.Equal(t, 49, b.List()[0].Score)
}

func TestRecordValidate(t *testing.T) {
	assert.NoError(t, Record{Score: 0, Time: 0}.Validate())
	assert.NoError(t, Record{Score: 120, Time: 33.5}.Validate())
	assert.ErrorIs(t, Record{Score: -1}.Validate(), ErrInvalidRecord)
	assert.ErrorIs(t, Record{Score: 1, Time: -2}.Validate(), ErrInvalidRecord)
	assert.ErrorIs(t, Record{Score: 1, Time: math.NaN()}.Validate(), ErrInvalidRecord)
}
