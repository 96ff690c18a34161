package gravity

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func seedSet(prefix string, n int) []Spec {
	specs := make([]Spec, n)
	for i := range specs {
		specs[i] = spec(fmt.Sprintf("%s%d", prefix, i), 10, float64(i*50), 0, 0, 1)
	}
	return specs
}

// Run with -race: reseeds, plain steps and reads share one State.
func TestStateConcurrentAccess(t *testing.T) {
	st := NewState()
	sets := [][]Spec{seedSet("a", 2), seedSet("b", 3)}
	if err := st.Seed(sets[0]); err != nil {
		t.Fatal(err)
	}

	// Every snapshot must come wholly from one seed set.
	consistent := func(ids []string) error {
		if len(ids) == 0 {
			return fmt.Errorf("empty snapshot")
		}
		prefix := ids[0][:1]
		want := 2
		if prefix == "b" {
			want = 3
		}
		if len(ids) != want {
			return fmt.Errorf("set %s has %d bodies, want %d", prefix, len(ids), want)
		}
		for _, id := range ids {
			if !strings.HasPrefix(id, prefix) {
				return fmt.Errorf("mixed snapshot %v", ids)
			}
		}
		return nil
	}

	const workers, rounds = 8, 200
	var wg sync.WaitGroup
	errs := make(chan error, workers*rounds)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				var ids []string
				switch (w + r) % 3 {
				case 0:
					res, err := st.Step(sets[(w+r)%2], 0.01)
					if err != nil {
						errs <- err
						return
					}
					for _, b := range res {
						ids = append(ids, b.ID.String())
					}
				case 1:
					res, err := st.Step(nil, 0.01)
					if err != nil {
						errs <- err
						return
					}
					for _, b := range res {
						ids = append(ids, b.ID.String())
					}
				default:
					for _, b := range st.Bodies() {
						ids = append(ids, b.ID.String())
					}
				}
				if err := consistent(ids); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestStateStepsAreSerialized(t *testing.T) {
	// A lone massive body drifts at constant velocity, so its position
	// counts the steps taken.
	st := NewState()
	if err := st.Seed([]Spec{spec("a", 1, 0, 0, 1, 0)}); err != nil {
		t.Fatal(err)
	}

	const workers, rounds = 8, 250
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				if _, err := st.Step(nil, 1); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if x := st.Bodies()[0].Pos.X; x != workers*rounds {
		t.Errorf("expected x=%d after %d steps, got %f", workers*rounds, workers*rounds, x)
	}
}
