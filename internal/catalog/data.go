package catalog

const imageParams = "?w=400&h=400&fit=crop"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + imageParams
}

func rubles(v int64) *int64 { return &v }

func percent(v int) *int { return &v }

func defaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Орехи", Icon: "🥜", Slug: "nuts"},
		{ID: "2", Name: "Сухофрукты", Icon: "🍇", Slug: "dried-fruits"},
		{ID: "3", Name: "Смеси", Icon: "🥗", Slug: "mixes"},
		{ID: "4", Name: "Цукаты", Icon: "🍬", Slug: "candied"},
		{ID: "5", Name: "Семена", Icon: "🌻", Slug: "seeds"},
	}
}

func defaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Малина Franui в молочном и белом шоколаде замороженная",
			Description: "Свежая малина в нежном молочном и белом шоколаде. Идеальный десерт для любого случая. Малина собирается на экологически чистых плантациях Патагонии и покрывается натуральным бельгийским шоколадом.",
			Price:       899,
			CategoryID:  "2",
			Images: []string{
				unsplash("photo-1587815073078-f636169821e3"),
				unsplash("photo-1563746098251-d35aef196e83"),
				unsplash("photo-1560806887-1e4cd0b6cbd6"),
			},
			Tags:     []string{"Десерты", "Замороженные десерты", "Franui"},
			Weight:   "150 г",
			InStock:  true,
			IsFrozen: true,
			Variants: []Variant{
				{ID: "v1", Name: "150 г", Price: 899, Weight: "150 г"},
				{ID: "v2", Name: "300 г", Price: 1699, Weight: "300 г"},
			},
		},
		{
			ID:              "2",
			Name:            "Чебупицца Горячая штучка",
			Description:     "Вкуснейшая чебупицца с сыром и ветчиной. Идеально подходит для быстрого перекуса. Просто разогрейте в микроволновке 2-3 минуты.",
			Price:           145,
			OriginalPrice:   rubles(239),
			DiscountPercent: percent(39),
			CategoryID:      "3",
			Images: []string{
				unsplash("photo-1565299624946-b28f40a0ae38"),
				unsplash("photo-1574071318508-1cdbab80d002"),
			},
			Tags:     []string{"Готовая еда", "Замороженное"},
			Weight:   "250 г",
			InStock:  true,
			IsFrozen: true,
		},
		{
			ID:          "3",
			Name:        "Миндаль жареный соленый",
			Description: "Отборный миндаль, обжаренный до золотистого цвета с морской солью. Богат витамином E и полезными жирами. Идеальный снек для здорового перекуса.",
			Price:       450,
			CategoryID:  "1",
			Images: []string{
				unsplash("photo-1508061253366-f7da158b6d46"),
				unsplash("photo-1609534717940-6dc2241c9778"),
			},
			Tags:    []string{"Орехи", "Снеки"},
			Weight:  "200 г",
			InStock: true,
			Variants: []Variant{
				{ID: "v1", Name: "100 г", Price: 250, Weight: "100 г"},
				{ID: "v2", Name: "200 г", Price: 450, Weight: "200 г"},
				{ID: "v3", Name: "500 г", Price: 999, Weight: "500 г"},
			},
		},
		{
			ID:              "4",
			Name:            "Кешью натуральный",
			Description:     "Нежный кешью без обработки, сохранивший все полезные свойства. Выращен во Вьетнаме. Содержит магний, цинк и железо.",
			Price:           590,
			OriginalPrice:   rubles(690),
			DiscountPercent: percent(15),
			CategoryID:      "1",
			Images:          []string{unsplash("photo-1563292651-4d6c7b893cb8")},
			Tags:            []string{"Орехи", "Натуральное"},
			Weight:          "250 г",
			InStock:         true,
			Variants: []Variant{
				{ID: "v1", Name: "250 г", Price: 590, Weight: "250 г"},
				{ID: "v2", Name: "500 г", Price: 1099, Weight: "500 г"},
			},
		},
		{
			ID:          "5",
			Name:        "Финики Меджул премиум",
			Description: "Королевские финики Меджул, самые крупные и сладкие. Выращены в Израиле. Природный источник энергии, богаты калием и клетчаткой.",
			Price:       799,
			CategoryID:  "2",
			Images:      []string{unsplash("photo-1593904308877-9bcb88b4e7b1")},
			Tags:        []string{"Сухофрукты", "Премиум"},
			Weight:      "500 г",
			InStock:     true,
		},
		{
			ID:              "6",
			Name:            "Курага узбекская отборная",
			Description:     "Сочная курага из солнечного Узбекистана без добавления сахара. Натуральная сушка на солнце сохраняет все витамины.",
			Price:           320,
			OriginalPrice:   rubles(399),
			DiscountPercent: percent(20),
			CategoryID:      "2",
			Images:          []string{unsplash("photo-1596273501048-8eb4c826c8c5")},
			Tags:            []string{"Сухофрукты", "Без сахара"},
			Weight:          "300 г",
			InStock:         true,
		},
		{
			ID:          "7",
			Name:        "Микс орехов и сухофруктов",
			Description: "Сбалансированная смесь орехов и сухофруктов для перекуса. В составе: миндаль, кешью, изюм, курага, чернослив.",
			Price:       420,
			CategoryID:  "3",
			Images:      []string{unsplash("photo-1604068549290-dea0e4a305ca")},
			Tags:        []string{"Смеси", "Перекус"},
			Weight:      "250 г",
			InStock:     true,
		},
		{
			ID:          "8",
			Name:        "Грецкий орех очищенный",
			Description: "Отборные ядра грецкого ореха, богатые омега-3. Улучшают работу мозга и сердечно-сосудистой системы.",
			Price:       380,
			CategoryID:  "1",
			Images:      []string{unsplash("photo-1605493725784-de00195cc589")},
			Tags:        []string{"Орехи", "Полезное"},
			Weight:      "200 г",
			InStock:     true,
		},
		{
			ID:              "9",
			Name:            "Чернослив без косточки",
			Description:     "Мягкий чернослив без косточки, идеален для выпечки и употребления в чистом виде. Улучшает пищеварение.",
			Price:           280,
			OriginalPrice:   rubles(350),
			DiscountPercent: percent(20),
			CategoryID:      "2",
			Images:          []string{unsplash("photo-1597714026720-8f74c62310ba")},
			Tags:            []string{"Сухофрукты", "Для выпечки"},
			Weight:          "300 г",
			InStock:         true,
		},
		{
			ID:          "10",
			Name:        "Фундук жареный",
			Description: "Ароматный фундук, обжаренный до хруста. Богат витамином E и фолиевой кислотой. Идеален для десертов.",
			Price:       520,
			CategoryID:  "1",
			Images:      []string{unsplash("photo-1574570068583-f77c67e1d0f1")},
			Tags:        []string{"Орехи", "Жареные"},
			Weight:      "200 г",
			InStock:     true,
		},
	}
}
