package identity

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/lavka-miniapp/pkg/config"
	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
)

const testUser = `{"id":42,"first_name":"Иван","last_name":"Петров","username":"ivan"}`

func identityConfig() config.IdentityConfig {
	return config.IdentityConfig{AdminIDs: []int64{123456789}, GuestName: "Гость", InitDataTTL: time.Hour}
}

func signed(t *testing.T, token string, authDate time.Time, user string) string {
	t.Helper()
	values := url.Values{}
	values.Set("query_id", "AAH")
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("user", user)
	values.Set("hash", signature(values, token))
	return values.Encode()
}

// signature is the hex HMAC-SHA256 of the sorted key=value lines, keyed by
// HMAC-SHA256("WebAppData", token), as Telegram signs launch data.
func signature(values url.Values, token string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(token))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestResolveWithoutHostIsGuest(t *testing.T) {
	r := NewResolver(identityConfig())

	p, err := r.Resolve("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsGuest || p.Name != "Гость" || p.ShopperKey != GuestID || p.AuthorID() != GuestID {
		t.Fatalf("unexpected guest %+v", p)
	}
	if p.IsAdmin {
		t.Fatal("guest must never be admin")
	}

	device, _ := r.Resolve("", "abc")
	if device.ShopperKey != "device:abc" {
		t.Fatalf("expected device scoped guest, got %q", device.ShopperKey)
	}
}

func TestResolveUnsignedUser(t *testing.T) {
	r := NewResolver(identityConfig())
	raw := url.Values{"user": {testUser}}.Encode()

	p, err := r.Resolve(raw, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.IsGuest || p.UserID != 42 || p.Name != "Иван" || p.Username != "ivan" {
		t.Fatalf("unexpected principal %+v", p)
	}
	if p.ShopperKey != "tg:42" || p.AuthorID() != "42" {
		t.Fatalf("unexpected keys %q %q", p.ShopperKey, p.AuthorID())
	}
}

func TestResolveAdmin(t *testing.T) {
	r := NewResolver(identityConfig())
	raw := url.Values{"user": {`{"id":123456789,"first_name":"Admin"}`}}.Encode()

	p, err := r.Resolve(raw, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsAdmin {
		t.Fatalf("expected admin, got %+v", p)
	}
}

func TestResolveMissingUserFallsBackToGuest(t *testing.T) {
	r := NewResolver(identityConfig())
	p, err := r.Resolve("query_id=AAH", "dev-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsGuest || p.ShopperKey != "device:dev-1" {
		t.Fatalf("expected guest fallback, got %+v", p)
	}
}

func TestResolveMalformedUserIsUnauthorized(t *testing.T) {
	r := NewResolver(identityConfig())
	_, err := r.Resolve("query_id=AAH&user=%7Bbroken", "dev-1")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for a broken user field, got %v", err)
	}
}

func TestResolveVerifiesSignature(t *testing.T) {
	cfg := identityConfig()
	cfg.BotToken = "123:secret"
	r := NewResolver(cfg)
	now := time.Now()

	p, err := r.Resolve(signed(t, cfg.BotToken, now.Add(-time.Minute), testUser), "")
	if err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if p.UserID != 42 {
		t.Fatalf("unexpected principal %+v", p)
	}

	_, err = r.Resolve(signed(t, "other:token", now.Add(-time.Minute), testUser), "")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for foreign signature, got %v", err)
	}

	_, err = r.Resolve(signed(t, cfg.BotToken, now.Add(-2*time.Hour), testUser), "")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for expired data, got %v", err)
	}

	_, err = r.Resolve(url.Values{"user": {testUser}}.Encode(), "")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for unsigned data, got %v", err)
	}
}

func TestPrincipalContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("empty context should not carry a principal")
	}
	ctx := WithPrincipal(context.Background(), Principal{UserID: 7})
	p, ok := FromContext(ctx)
	if !ok || p.UserID != 7 {
		t.Fatalf("unexpected principal %+v ok=%v", p, ok)
	}
}
