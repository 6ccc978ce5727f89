package reviews

import "time"

const (
	MinRating = 1
	MaxRating = 5

	// NoDisadvantages is stored when the author leaves the field blank.
	NoDisadvantages = "Нет"

	GuestAuthorID   = "guest"
	GuestAuthorName = "Гость"
)

type Review struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	Rating        int       `json:"rating"`
	Advantages    string    `json:"advantages"`
	Disadvantages string    `json:"disadvantages"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// Input is what an author submits; the store assigns id and timestamp.
type Input struct {
	ProductID     string
	UserID        string
	UserName      string
	Rating        int
	Advantages    string
	Disadvantages string
	Comment       string
}

func seedReviews() []Review {
	at := func(value string) time.Time {
		ts, err := time.Parse(time.RFC3339, value)
		if err != nil {
			panic(err)
		}
		return ts
	}
	return []Review{
		{
			ID:            "r1",
			ProductID:     "1",
			UserID:        "u1",
			UserName:      "Анна М.",
			Rating:        5,
			Advantages:    "Свежий, хрустящий, отличный вкус",
			Disadvantages: NoDisadvantages,
			Comment:       "Очень вкусный миндаль! Заказываю уже третий раз, всегда свежий и качественный.",
			CreatedAt:     at("2026-01-20T10:00:00Z"),
		},
		{
			ID:            "r2",
			ProductID:     "1",
			UserID:        "u2",
			UserName:      "Дмитрий К.",
			Rating:        4,
			Advantages:    "Хорошее качество, быстрая доставка",
			Disadvantages: "Хотелось бы упаковку побольше",
			Comment:       "Хороший миндаль, но хотелось бы вариант упаковки 1кг.",
			CreatedAt:     at("2026-01-18T15:30:00Z"),
		},
		{
			ID:            "r3",
			ProductID:     "2",
			UserID:        "u3",
			UserName:      "Елена С.",
			Rating:        5,
			Advantages:    "Натуральный вкус, крупные орешки",
			Disadvantages: NoDisadvantages,
			Comment:       "Лучший кешью что я пробовала! Очень нежный и вкусный.",
			CreatedAt:     at("2026-01-15T12:00:00Z"),
		},
		{
			ID:            "r4",
			ProductID:     "3",
			UserID:        "u4",
			UserName:      "Михаил П.",
			Rating:        5,
			Advantages:    "Сладкие, мягкие, крупные",
			Disadvantages: "Цена высоковата",
			Comment:       "Финики просто шикарные! Как конфеты, только полезные.",
			CreatedAt:     at("2026-01-10T09:00:00Z"),
		},
		{
			ID:            "r5",
			ProductID:     "4",
			UserID:        "u5",
			UserName:      "Ольга В.",
			Rating:        4,
			Advantages:    "Натуральная, без сахара",
			Disadvantages: "Немного суховата",
			Comment:       "Хорошая курага, но бывает и более сочная.",
			CreatedAt:     at("2026-01-08T14:00:00Z"),
		},
	}
}
