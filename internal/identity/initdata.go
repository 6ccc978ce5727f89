package identity

import (
	"time"

	pkgerrors "github.com/angelmondragon/lavka-miniapp/pkg/errors"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// readInitData decodes the mini-app launch data. With a bot token the data
// must carry a valid signature no older than maxAge; maxAge 0 disables the
// age check.
func readInitData(raw, botToken string, maxAge time.Duration) (initdata.InitData, error) {
	if botToken != "" {
		if err := initdata.Validate(raw, botToken, maxAge); err != nil {
			return initdata.InitData{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "init data rejected")
		}
	}
	data, err := initdata.Parse(raw)
	if err != nil {
		return initdata.InitData{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "malformed init data")
	}
	return data, nil
}
