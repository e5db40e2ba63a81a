package handler

import (
	"strconv"
	"strings"
)

// actionKind enumerates every inline button the bot emits. Callback data is
// decoded once at the dispatch boundary; handlers never string-match raw data.
type actionKind string

const (
	actNoop       actionKind = "noop"
	actBack       actionKind = "back"
	actBackToMain actionKind = "back_main"

	actOpenCategory actionKind = "cat"

	actAddDocuments         actionKind = "add_docs"
	actDoneDocuments        actionKind = "done_docs"
	actDeleteDocumentSelect actionKind = "del_doc_sel"
	actDeleteDocument       actionKind = "del_doc"

	actAddLink          actionKind = "add_link"
	actDoneLinks        actionKind = "done_links"
	actDeleteLinkSelect actionKind = "del_link_sel"
	actDeleteLink       actionKind = "del_link"

	actAddAnnouncement          actionKind = "add_ann"
	actViewAnnouncement         actionKind = "view_ann"
	actChooseImages             actionKind = "imgs"
	actSkipImages               actionKind = "skip_imgs"
	actDoneImages               actionKind = "done_imgs"
	actDeleteAnnouncementSelect actionKind = "del_ann_sel"
	actDeleteAnnouncement       actionKind = "del_ann"
	actEditAnnouncementSelect   actionKind = "edit_ann_sel"
	actEditAnnouncement         actionKind = "edit_ann"
	actEditTitle                actionKind = "edit_title"
	actEditText                 actionKind = "edit_text"
	actEditImages               actionKind = "edit_imgs"
	actRemoveImage              actionKind = "rm_img"
	actAddMoreImages            actionKind = "more_imgs"
	actDoneEditImages           actionKind = "done_edit_imgs"
	actSaveEdit                 actionKind = "save_edit"
)

// action is a decoded callback. Key is set for category actions, ID for
// row-addressed actions, Index for image-slot actions.
type action struct {
	Kind  actionKind
	Key   string
	ID    int64
	Index int
}

// operatorOnly reports whether the action mutates content and therefore
// requires the caller to be in the operator allow-list.
func (a action) operatorOnly() bool {
	switch a.Kind {
	case actNoop, actBack, actBackToMain, actOpenCategory, actViewAnnouncement:
		return false
	}
	return true
}

func encodeAction(kind actionKind) string {
	return string(kind)
}

func encodeCategoryAction(kind actionKind, key string) string {
	return string(kind) + ":" + key
}

func encodeIDAction(kind actionKind, id int64) string {
	return string(kind) + ":" + strconv.FormatInt(id, 10)
}

func encodeIndexAction(kind actionKind, index int) string {
	return string(kind) + ":" + strconv.Itoa(index)
}

// parseAction decodes callback data. Unknown kinds and malformed arguments
// yield ok=false; the dispatcher drops those updates.
func parseAction(data string) (action, bool) {
	kind, arg, hasArg := strings.Cut(data, ":")

	switch actionKind(kind) {
	case actOpenCategory:
		if !hasArg || arg == "" {
			return action{}, false
		}
		return action{Kind: actOpenCategory, Key: arg}, true

	case actDeleteDocument, actDeleteLink, actViewAnnouncement,
		actDeleteAnnouncement, actEditAnnouncement:
		id, err := strconv.ParseInt(arg, 10, 64)
		if !hasArg || err != nil {
			return action{}, false
		}
		return action{Kind: actionKind(kind), ID: id}, true

	case actRemoveImage:
		index, err := strconv.Atoi(arg)
		if !hasArg || err != nil || index < 0 {
			return action{}, false
		}
		return action{Kind: actRemoveImage, Index: index}, true

	case actNoop, actBack, actBackToMain,
		actAddDocuments, actDoneDocuments, actDeleteDocumentSelect,
		actAddLink, actDoneLinks, actDeleteLinkSelect,
		actAddAnnouncement, actChooseImages, actSkipImages, actDoneImages,
		actDeleteAnnouncementSelect, actEditAnnouncementSelect,
		actEditTitle, actEditText, actEditImages,
		actAddMoreImages, actDoneEditImages, actSaveEdit:
		if hasArg {
			return action{}, false
		}
		return action{Kind: actionKind(kind)}, true
	}
	return action{}, false
}
