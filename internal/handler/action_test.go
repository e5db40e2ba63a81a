package handler

import "testing"

func TestParseActionRoundTrip(t *testing.T) {
	cases := []struct {
		data string
		want action
	}{
		{encodeAction(actBack), action{Kind: actBack}},
		{encodeAction(actDoneDocuments), action{Kind: actDoneDocuments}},
		{encodeCategoryAction(actOpenCategory, "doc8"), action{Kind: actOpenCategory, Key: "doc8"}},
		{encodeIDAction(actDeleteDocument, 42), action{Kind: actDeleteDocument, ID: 42}},
		{encodeIDAction(actViewAnnouncement, 7), action{Kind: actViewAnnouncement, ID: 7}},
		{encodeIndexAction(actRemoveImage, 2), action{Kind: actRemoveImage, Index: 2}},
	}
	for _, c := range cases {
		got, ok := parseAction(c.data)
		if !ok {
			t.Fatalf("parseAction(%q) not ok", c.data)
		}
		if got != c.want {
			t.Fatalf("parseAction(%q) = %+v, want %+v", c.data, got, c.want)
		}
	}
}

func TestParseActionRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"unknown",
		"cat",          // category without key
		"del_doc:abc",  // non-numeric id
		"del_doc",      // id missing
		"rm_img:-1",    // negative index
		"back:extra",   // bare action with argument
		"view_ann:1:2", // trailing junk
	}
	for _, data := range bad {
		if _, ok := parseAction(data); ok {
			t.Fatalf("parseAction(%q) accepted malformed data", data)
		}
	}
}

func TestOperatorOnly(t *testing.T) {
	open := map[actionKind]bool{
		actNoop:             true,
		actBack:             true,
		actBackToMain:       true,
		actOpenCategory:     true,
		actViewAnnouncement: true,
	}
	all := []actionKind{
		actNoop, actBack, actBackToMain, actOpenCategory,
		actAddDocuments, actDoneDocuments, actDeleteDocumentSelect, actDeleteDocument,
		actAddLink, actDoneLinks, actDeleteLinkSelect, actDeleteLink,
		actAddAnnouncement, actViewAnnouncement,
		actChooseImages, actSkipImages, actDoneImages,
		actDeleteAnnouncementSelect, actDeleteAnnouncement,
		actEditAnnouncementSelect, actEditAnnouncement,
		actEditTitle, actEditText, actEditImages,
		actRemoveImage, actAddMoreImages, actDoneEditImages, actSaveEdit,
	}
	for _, kind := range all {
		a := action{Kind: kind}
		if got, want := a.operatorOnly(), !open[kind]; got != want {
			t.Fatalf("operatorOnly(%s) = %v, want %v", kind, got, want)
		}
	}
}
