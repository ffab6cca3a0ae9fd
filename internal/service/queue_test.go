package service

import "testing"

func TestQueueAddPlayer(t *testing.T) {
	q := NewQueue()

	if err := q.AddPlayer(Player{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := q.AddPlayer(Player{ID: "a"}); err == nil {
		t.Error("adding the same player twice must fail")
	}
	if q.Size() != 1 {
		t.Errorf("Size = %d, want 1", q.Size())
	}
}

func TestQueueNextPairIsFIFO(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(Player{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	p1, p2 := q.NextPair()
	if p1.ID != "a" || p2.ID != "b" {
		t.Errorf("NextPair = %s, %s; want a, b", p1.ID, p2.ID)
	}
	if q.Size() != 1 {
		t.Errorf("Size = %d, want 1", q.Size())
	}
}
