package normalize

import "strings"

// cursorShapes — где искать курсор следующей страницы, по порядку.
var cursorShapes = []func(root any) (string, bool){
	timelineCursor("timeline"),
	timelineCursor("timeline_v2"),
	func(root any) (string, bool) {
		c := str(at(root, "meta", "next_token"))
		return c, c != ""
	},
}

// Cursor возвращает значение нижнего (Bottom) курсора.
// ok=false — следующей страницы нет.
func Cursor(raw any) (string, bool) {
	for _, match := range cursorShapes {
		if c, ok := match(raw); ok {
			return c, true
		}
	}

	return "", false
}

// timelineCursor обходит записи TimelineAddEntries и одиночные записи
// TimelineReplaceEntry (так провайдер обновляет курсор на последующих страницах).
func timelineCursor(key string) func(any) (string, bool) {
	return func(root any) (string, bool) {
		tl, ok := objectAt(root, "data", "user", "result", key, "timeline")
		if !ok {
			return "", false
		}

		entries := addEntries(tl)

		instructions, _ := arrayAt(tl, "instructions")
		for _, inst := range instructions {
			if str(at(inst, "type")) != instrReplaceEntry {
				continue
			}
			if e, ok := objectAt(inst, "entry"); ok {
				entries = append(entries, e)
			}
		}

		for _, e := range entries {
			if !isBottomCursor(e) {
				continue
			}
			if v := str(at(e, "content", "value")); v != "" {
				return v, true
			}
		}

		return "", false
	}
}

func isBottomCursor(e any) bool {
	content, ok := objectAt(e, "content")
	if !ok {
		return false
	}

	if str(get(content, "entryType")) != entryCursor && str(get(content, "__typename")) != entryCursor {
		return false
	}

	return str(get(content, "cursorType")) == "Bottom" ||
		strings.HasPrefix(str(at(e, "entryId")), "cursor-bottom")
}
