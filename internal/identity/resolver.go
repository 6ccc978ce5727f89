package identity

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/lavka-miniapp/pkg/config"
)

type Resolver struct {
	admins      map[int64]struct{}
	guestName   string
	botToken    string
	initDataTTL time.Duration
}

func NewResolver(cfg config.IdentityConfig) *Resolver {
	admins := make(map[int64]struct{}, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = struct{}{}
	}
	guestName := strings.TrimSpace(cfg.GuestName)
	if guestName == "" {
		guestName = "Гость"
	}
	return &Resolver{
		admins:      admins,
		guestName:   guestName,
		botToken:    strings.TrimSpace(cfg.BotToken),
		initDataTTL: cfg.InitDataTTL,
	}
}

// Guest returns the anonymous principal. A non-empty deviceID gives the guest
// a state container of its own.
func (r *Resolver) Guest(deviceID string) Principal {
	key := GuestID
	if deviceID = strings.TrimSpace(deviceID); deviceID != "" {
		key = shopperPrefixDevice + deviceID
	}
	return Principal{Name: r.guestName, IsGuest: true, ShopperKey: key}
}

// Resolve reads the raw mini-app init data. Empty data, or data without a
// user, yields the guest. Malformed data is unauthorized. When a bot token is
// configured the data must carry a valid, unexpired signature.
func (r *Resolver) Resolve(rawInitData, deviceID string) (Principal, error) {
	rawInitData = strings.TrimSpace(rawInitData)
	if rawInitData == "" {
		return r.Guest(deviceID), nil
	}
	data, err := readInitData(rawInitData, r.botToken, r.initDataTTL)
	if err != nil {
		return Principal{}, err
	}
	if data.User.ID == 0 {
		return r.Guest(deviceID), nil
	}

	user := data.User
	name := strings.TrimSpace(user.FirstName)
	if name == "" {
		name = r.guestName
	}
	_, admin := r.admins[user.ID]
	return Principal{
		UserID:     user.ID,
		Name:       name,
		Username:   user.Username,
		PhotoURL:   user.PhotoURL,
		IsAdmin:    admin,
		ShopperKey: shopperPrefixUser + strconv.FormatInt(user.ID, 10),
	}, nil
}

func (r *Resolver) IsAdmin(userID int64) bool {
	_, ok := r.admins[userID]
	return ok
}

// WithPrincipal stores p on ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal stored on ctx.
func FromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
