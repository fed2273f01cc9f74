package cartcookie

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	c := New([]byte("test-secret"), "cart", false)

	v := c.Encode("0b40c5d2-5a3f-4f6e-9a21-b3f0a1c2d3e4")
	id, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "0b40c5d2-5a3f-4f6e-9a21-b3f0a1c2d3e4", id)
}

func TestCodecRejectsTampering(t *testing.T) {
	c := New([]byte("test-secret"), "cart", false)

	// reuse cart-a's signature with a different id
	v := c.Encode("cart-a")
	sig := strings.SplitN(v, ".", 2)[1]
	_, err := c.Decode("cart-b." + sig)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	a := New([]byte("secret-a"), "cart", false)
	b := New([]byte("secret-b"), "cart", false)

	_, err := b.Decode(a.Encode("cart-1"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecRejectsMalformed(t *testing.T) {
	c := New([]byte("test-secret"), "cart", false)

	for _, v := range []string{"", "no-signature", ".sig-only", "a.b.c"} {
		_, err := c.Decode(v)
		assert.ErrorIs(t, err, ErrInvalid, "value %q", v)
	}
}

func TestCodecSetUsesTTL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := New([]byte("test-secret"), "cart", false)
	c.TTL = time.Hour

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("GET", "/", nil)
	c.Set(ctx, "cart-1")

	res := w.Result()
	require.Len(t, res.Cookies(), 1)
	ck := res.Cookies()[0]
	assert.Equal(t, "cart", ck.Name)
	assert.Equal(t, int(time.Hour.Seconds()), ck.MaxAge)

	id, err := c.Decode(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "cart-1", id)
}
