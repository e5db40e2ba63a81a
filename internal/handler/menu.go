package handler

import (
	"strconv"

	"github.com/go-telegram/bot/models"

	"github.com/profkom/unionbot/internal/config"
	"github.com/profkom/unionbot/internal/domain"
	"github.com/profkom/unionbot/internal/telegram"
)

const (
	mainMenuText     = "Добро пожаловать в профсоюзного бота! Выберите категорию:"
	chooseActionText = "Выберите действие:"
	permissionDenied = "У вас нет прав для выполнения этой операции."
	backLabel        = "Назад"
	genericErrorText = "Произошла ошибка. Попробуйте снова."
	notFoundAnnText  = "Объявление не найдено."
)

func mainMenuKeyboard() *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		buttons = append(buttons, telegram.InlineButton(c.DisplayName, encodeCategoryAction(actOpenCategory, c.Key)))
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: telegram.ChunkRows(buttons, config.CategoriesPerRow),
	}
}

func backKeyboard() *models.InlineKeyboardMarkup {
	return telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBack))),
	)
}

func backToMainKeyboard() *models.InlineKeyboardMarkup {
	return telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBackToMain))),
	)
}

// categoryActionKeyboard builds the per-category action menu. Mutating rows
// appear only for operators; announcement rows only in the announcements
// category; the delete-link row only when there is a link to delete.
func categoryActionKeyboard(key string, isAdmin, hasLinks bool) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	if isAdmin {
		rows = append(rows,
			telegram.ButtonRow(telegram.InlineButton("Добавить документы", encodeAction(actAddDocuments))),
			telegram.ButtonRow(telegram.InlineButton("Добавить ссылки", encodeAction(actAddLink))),
			telegram.ButtonRow(telegram.InlineButton("Удалить документ", encodeAction(actDeleteDocumentSelect))),
		)
		if hasLinks {
			rows = append(rows, telegram.ButtonRow(telegram.InlineButton("Удалить ссылку", encodeAction(actDeleteLinkSelect))))
		}
		if key == domain.AnnouncementsKey {
			rows = append(rows,
				telegram.ButtonRow(telegram.InlineButton("Добавить объявление", encodeAction(actAddAnnouncement))),
				telegram.ButtonRow(telegram.InlineButton("Удалить объявление", encodeAction(actDeleteAnnouncementSelect))),
				telegram.ButtonRow(telegram.InlineButton("Редактировать объявление", encodeAction(actEditAnnouncementSelect))),
			)
		}
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBackToMain))))
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func editMenuKeyboard() *models.InlineKeyboardMarkup {
	return telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("Редактировать заголовок", encodeAction(actEditTitle))),
		telegram.ButtonRow(telegram.InlineButton("Редактировать текст", encodeAction(actEditText))),
		telegram.ButtonRow(telegram.InlineButton("Редактировать изображения", encodeAction(actEditImages))),
		telegram.ButtonRow(telegram.InlineButton("Сохранить изменения", encodeAction(actSaveEdit))),
		telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBack))),
	)
}

func collectImagesKeyboard() *models.InlineKeyboardMarkup {
	return telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("Завершить с изображениями", encodeAction(actDoneImages))),
		telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBack))),
	)
}

func imageChoiceKeyboard() *models.InlineKeyboardMarkup {
	return telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("Добавить изображения (опционально)", encodeAction(actChooseImages))),
		telegram.ButtonRow(telegram.InlineButton("Завершить без изображений", encodeAction(actSkipImages))),
		telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBack))),
	)
}

func editImagesKeyboard(imageCount int) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for i := 0; i < imageCount; i++ {
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton("Удалить изображение "+strconv.Itoa(i+1), encodeIndexAction(actRemoveImage, i)),
		))
	}
	rows = append(rows,
		telegram.ButtonRow(telegram.InlineButton("Добавить новое изображение", encodeAction(actAddMoreImages))),
		telegram.ButtonRow(telegram.InlineButton("Завершить редактирование изображений", encodeAction(actDoneEditImages))),
		telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBack))),
	)
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func addDocumentsKeyboard() *models.InlineKeyboardMarkup {
	return telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("Завершить загрузку", encodeAction(actDoneDocuments))),
		telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBack))),
	)
}

func addLinksKeyboard() *models.InlineKeyboardMarkup {
	return telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("Завершить добавление", encodeAction(actDoneLinks))),
		telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBack))),
	)
}
