package geocode_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infernolabs/scmflow/pkg/geocode"
)

// fakeGeocoder mimics the upstream API: /{city}?json=1 with string latt/longt.
func fakeGeocoder(coords map[string][2]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Path[1:]
		c, ok := coords[city]
		if !ok {
			fmt.Fprint(w, `{"latt":"Throttled! See geocode.xyz/pricing","longt":"Throttled!"}`)
			return
		}
		fmt.Fprintf(w, `{"latt":%q,"longt":%q}`, c[0], c[1])
	}))
}

func TestResolveParsesStringCoordinates(t *testing.T) {
	srv := fakeGeocoder(map[string][2]string{"Mumbai": {"19.0760", "72.8777"}})
	defer srv.Close()

	r := geocode.NewResolverWith(srv.URL, 0)
	coords, ok, err := r.Resolve(context.Background(), "Mumbai")
	require.NoError(t, err)
	assert.True(t, ok)
	// [longitude, latitude], the order the map widget expects.
	assert.Equal(t, geocode.Coordinates{72.8777, 19.0760}, coords)
}

func TestResolveFallsBackOnGarbage(t *testing.T) {
	srv := fakeGeocoder(nil)
	defer srv.Close()

	r := geocode.NewResolverWith(srv.URL, 0)
	coords, ok, err := r.Resolve(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, geocode.Fallback, coords)
}

func TestResolveAllContinuesPastFailures(t *testing.T) {
	srv := fakeGeocoder(map[string][2]string{"Pune": {"18.52", "73.85"}})
	defer srv.Close()

	r := geocode.NewResolverWith(srv.URL, 0)
	markers, err := r.ResolveAll(context.Background(), []string{"Nowhere", "Pune"})
	require.NoError(t, err)
	require.Len(t, markers, 2)

	assert.Equal(t, "Nowhere", markers[0].City)
	assert.Equal(t, geocode.Fallback, markers[0].Coordinates)
	assert.Equal(t, "Pune", markers[1].City)
	assert.Equal(t, geocode.Coordinates{73.85, 18.52}, markers[1].Coordinates)
}

func TestResolveAllStopsOnCancel(t *testing.T) {
	srv := fakeGeocoder(map[string][2]string{"Pune": {"18.52", "73.85"}})
	defer srv.Close()

	// Long delay so cancellation lands inside the pre-call pause.
	r := geocode.NewResolverWith(srv.URL, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	markers, err := r.ResolveAll(ctx, []string{"Pune", "Delhi", "Mumbai"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, markers)
	assert.Less(t, time.Since(start), time.Second, "cancel should interrupt the pause")
}

func TestStreamDeliversIncrementally(t *testing.T) {
	srv := fakeGeocoder(map[string][2]string{
		"Pune":  {"18.52", "73.85"},
		"Delhi": {"28.61", "77.20"},
	})
	defer srv.Close()

	r := geocode.NewResolverWith(srv.URL, 0)
	ch := r.Stream(context.Background(), []string{"Pune", "Delhi"})

	var got []geocode.Marker
	for m := range ch {
		got = append(got, m)
	}

	require.Len(t, got, 2)
	assert.Equal(t, "Pune", got[0].City)
	assert.Equal(t, "Delhi", got[1].City)
}

func TestStreamClosesOnCancel(t *testing.T) {
	srv := fakeGeocoder(nil)
	defer srv.Close()

	r := geocode.NewResolverWith(srv.URL, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := r.Stream(ctx, []string{"Pune", "Delhi"})

	select {
	case _, open := <-ch:
		assert.False(t, open, "channel should close without delivering")
	case <-time.After(time.Second):
		t.Fatal("stream did not close after cancellation")
	}
}
