package newsid

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForURLDeterministic(t *testing.T) {
	url := "https://example.com/news/lost-dog-walks-home"
	assert.Equal(t, ForURL(url), ForURL(url))
	assert.Len(t, ForURL(url), Length)
}

func TestForURLDistinctURLs(t *testing.T) {
	a := ForURL("https://example.com/a")
	b := ForURL("https://example.com/b")
	assert.NotEqual(t, a, b)
}

func TestForURLNoCollisionsOverRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[string]string{}
	for i := 0; i < 5000; i++ {
		url := fmt.Sprintf("https://news.example/%d/%d", rng.Int63(), i)
		id := ForURL(url)
		assert.Len(t, id, Length)
		if prev, ok := seen[id]; ok {
			t.Fatalf("collision: %q and %q both map to %s", prev, url, id)
		}
		seen[id] = url
	}
}

func TestForURLEmptyStringStillProducesID(t *testing.T) {
	assert.Len(t, ForURL(""), Length)
}
