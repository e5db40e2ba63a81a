package domain

// Category is a static named bucket that scopes documents, links and
// announcements. Categories are fixed at compile time and never persisted.
type Category struct {
	Key         string
	DisplayName string
}

// AnnouncementsKey is the category that enables announcement actions.
const AnnouncementsKey = "doc8"

// Categories lists every category in main-menu display order.
var Categories = []Category{
	{Key: "doc1", DisplayName: "Базовые документы"},
	{Key: "doc2", DisplayName: "Структура ППО"},
	{Key: "doc3", DisplayName: "Правовая защита"},
	{Key: "doc4", DisplayName: "Охрана труда"},
	{Key: "doc5", DisplayName: "Оздоровление"},
	{Key: "doc6", DisplayName: "Туристско-экскурсионная деятельность"},
	{Key: "doc7", DisplayName: "Информационная работа"},
	{Key: "doc8", DisplayName: "Объявления"},
	{Key: "doc9", DisplayName: "Образцы документов"},
	{Key: "doc10", DisplayName: "Полезные ссылки"},
}

// CategoryByKey resolves a category key to its definition.
func CategoryByKey(key string) (Category, bool) {
	for _, c := range Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName returns the display name for a key, or the key itself when
// the key is unknown.
func CategoryName(key string) string {
	if c, ok := CategoryByKey(key); ok {
		return c.DisplayName
	}
	return key
}
