package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvsCodeDev/vvsCodeWebDev/modules/contact"
)

func TestHashIP(t *testing.T) {
	t.Parallel()

	t.Run("deterministic for same input and salt", func(t *testing.T) {
		t.Parallel()

		a := contact.HashIP("203.0.113.7", "pepper")
		b := contact.HashIP("203.0.113.7", "pepper")
		assert.Equal(t, a, b)
	})

	t.Run("64 hex characters", func(t *testing.T) {
		t.Parallel()

		h := contact.HashIP("203.0.113.7", "pepper")
		assert.Len(t, h, 64)
		assert.Regexp(t, "^[0-9a-f]+$", h)
	})

	t.Run("salt changes the digest", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t,
			contact.HashIP("203.0.113.7", "pepper"),
			contact.HashIP("203.0.113.7", "salt"))
	})

	t.Run("different IPs differ", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t,
			contact.HashIP("203.0.113.7", "pepper"),
			contact.HashIP("203.0.113.8", "pepper"))
	})

	t.Run("known vector", func(t *testing.T) {
		t.Parallel()

		// sha256("1.2.3.4salt")
		assert.Equal(t,
			"eef3a782b98f14c5e62afb8ebd9932ef797dbe360e437abb4028e853222befb1",
			contact.HashIP("1.2.3.4", "salt"))
	})
}
