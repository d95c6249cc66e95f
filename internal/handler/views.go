package handler

// view is one page of the sidebar menu.
type view struct {
	Key     string
	Label   string
	Icon    string
	Heading string
	Path    string
}

var (
	chatView = view{
		Key:     "chat",
		Label:   "ChatBot",
		Icon:    "💬",
		Heading: "🤖 ChatBot",
		Path:    "/chat",
	}
	captionView = view{
		Key:     "caption",
		Label:   "Image Captioning",
		Icon:    "🖼️",
		Heading: "📷 Snap Narrate",
		Path:    "/caption",
	}
	embedView = view{
		Key:     "embed",
		Label:   "Embed text",
		Icon:    "🔤",
		Heading: "🔡 Embed Text",
		Path:    "/embed",
	}
	askView = view{
		Key:     "ask",
		Label:   "Ask me anything",
		Icon:    "❔",
		Heading: "❓ Ask me a question",
		Path:    "/ask",
	}
)

// views is the menu order; the first entry is the default page.
var views = []view{chatView, captionView, embedView, askView}

type navItem struct {
	view
	Active bool
}

func navFor(active view) []navItem {
	items := make([]navItem, len(views))
	for i, v := range views {
		items[i] = navItem{view: v, Active: v.Key == active.Key}
	}
	return items
}
