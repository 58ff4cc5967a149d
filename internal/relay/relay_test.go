package relay_test

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/ringqueue/internal/relay"
	"github.com/hedisam/ringqueue/internal/ringbuffer"
)

func collect[T any](t *testing.T, out <-chan T) []T {
	t.Helper()

	var values []T
	timeout := time.After(5 * time.Second)
	for {
		select {
		case v, ok := <-out:
			if !ok {
				return values
			}
			values = append(values, v)
		case <-timeout:
			t.Fatal("timed out waiting for relay output to close")
			return nil
		}
	}
}

func TestBufferOverflowPolicies(t *testing.T) {
	tests := map[string]struct {
		policy   relay.Policy
		expected []int
	}{
		"block keeps every value": {
			policy:   relay.PolicyBlock,
			expected: []int{1, 2, 3, 4, 5, 6},
		},
		"drop newest keeps the first values": {
			policy:   relay.PolicyDropNewest,
			expected: []int{1, 2, 3},
		},
		"drop oldest keeps the last values": {
			policy:   relay.PolicyDropOldest,
			expected: []int{4, 5, 6},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			in := make(chan int, 6)
			for i := range 6 {
				in <- i + 1
			}
			close(in)

			out, err := relay.Buffer(context.Background(), logrus.New(), in, 3, test.policy)
			require.NoError(t, err)

			if test.policy != relay.PolicyBlock {
				// nobody reads from out until every input value has been taken by the relay
				require.Eventually(t, func() bool { return len(in) == 0 }, time.Second, time.Millisecond)
			}

			assert.Equal(t, test.expected, collect(t, out))
		})
	}
}

func TestBufferPreservesOrder(t *testing.T) {
	in := make(chan int)
	go func() {
		defer close(in)
		for i := range 1000 {
			in <- i
		}
	}()

	out, err := relay.Buffer(context.Background(), logrus.New(), in, 8, relay.PolicyBlock)
	require.NoError(t, err)

	values := collect(t, out)
	require.Len(t, values, 1000)
	assert.True(t, slices.IsSorted(values))
}

func TestBufferStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan string)

	out, err := relay.Buffer(ctx, logrus.New(), in, 2, relay.PolicyBlock)
	require.NoError(t, err)

	in <- "a"
	v := <-out
	assert.Equal(t, "a", v)

	cancel()
	assert.Empty(t, collect(t, out))
}

func TestBufferInvalidCapacity(t *testing.T) {
	_, err := relay.Buffer(context.Background(), logrus.New(), make(chan int), 0, relay.PolicyBlock)
	assert.ErrorIs(t, err, ringbuffer.ErrInitializationLayout)
}

func TestParsePolicy(t *testing.T) {
	tests := map[string]struct {
		input       string
		expected    relay.Policy
		errContains string
	}{
		"block":           {input: "block", expected: relay.PolicyBlock},
		"drop newest":     {input: "drop-newest", expected: relay.PolicyDropNewest},
		"drop oldest":     {input: " Drop-Oldest ", expected: relay.PolicyDropOldest},
		"unknown policy":  {input: "drop-all", errContains: `unknown overflow policy "drop-all"`},
		"empty is denied": {input: "", errContains: "unknown overflow policy"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			policy, err := relay.ParsePolicy(test.input)
			if test.errContains != "" {
				assert.ErrorContains(t, err, test.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, policy)
			assert.Equal(t, strings.TrimSpace(strings.ToLower(test.input)), policy.String())
		})
	}
}
