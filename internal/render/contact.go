package render

import (
	"strings"

	"github.com/alnah/go-cv2pdf/internal/content"
)

const (
	linkedInBase = "https://www.linkedin.com/in/"
	gitHubBase   = "https://github.com/"
)

type contactItem struct {
	kind string
	text string
	href string
}

// contactItems lists the set contact fields in display order.
func contactItems(fm content.Frontmatter) []contactItem {
	var items []contactItem
	if fm.Email != "" {
		items = append(items, contactItem{"email", fm.Email, "mailto:" + fm.Email})
	}
	if fm.Phone != "" {
		items = append(items, contactItem{"phone", fm.Phone, "tel:" + strings.Join(strings.Fields(fm.Phone), "")})
	}
	if fm.Location != "" {
		items = append(items, contactItem{kind: "location", text: fm.Location})
	}
	if fm.LinkedIn != "" {
		href, text := profileLink(fm.LinkedIn, linkedInBase)
		items = append(items, contactItem{"linkedin", text, href})
	}
	if fm.GitHub != "" {
		href, text := profileLink(fm.GitHub, gitHubBase)
		items = append(items, contactItem{"github", text, href})
	}
	if fm.Website != "" {
		href := fm.Website
		if scheme(normalize(href)) == "" && !strings.HasPrefix(href, "/") {
			href = "https://" + href
		}
		items = append(items, contactItem{"website", displayURL(fm.Website), href})
	}
	return items
}

// profileLink expands a bare handle against base. Full URLs are kept.
func profileLink(v, base string) (href, text string) {
	v = strings.TrimSpace(v)
	if scheme(normalize(v)) != "" || strings.Contains(v, "/") {
		href = v
		if scheme(normalize(v)) == "" {
			href = "https://" + v
		}
		return href, displayURL(v)
	}
	handle := strings.Trim(strings.TrimPrefix(v, "@"), "/")
	return base + handle, handle
}

// displayURL drops the scheme, "www." and a trailing slash.
func displayURL(u string) string {
	u = strings.TrimSpace(u)
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}

// Contact renders the contact block, or "" when no contact field is set.
// The block is atomic for pagination.
func Contact(fm content.Frontmatter, opts Options) string {
	if !fm.HasContact() {
		return ""
	}
	items := contactItems(fm)

	layout := "cv-contact-vertical"
	if opts.Layout == Horizontal {
		layout = "cv-contact-horizontal"
	}

	var b strings.Builder
	b.WriteString(`<div class="cv-contact ` + layout + ` keep-together">`)
	b.WriteString(`<ul class="cv-contact-list">`)
	for _, it := range items {
		b.WriteString(`<li class="cv-contact-item cv-contact-` + it.kind + `">`)
		if it.href != "" {
			b.WriteString(`<a class="cv-contact-link"` + attr("href", SanitizeURL(it.href)) + `>`)
			b.WriteString(Escape(it.text))
			b.WriteString(`</a>`)
		} else {
			b.WriteString(`<span class="cv-contact-text">` + Escape(it.text) + `</span>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}

// Photo renders the photo block, or "" when src is empty or unsafe.
func Photo(src, alt string) string {
	src = SanitizeImageSource(src)
	if src == "" {
		return ""
	}
	return `<div class="cv-photo keep-together"><img class="cv-photo-img"` +
		attr("src", src) + attr("alt", alt) + `></div>`
}

// Header renders the name block of the main column. With a horizontal
// layout the contact block sits under the title.
func Header(fm content.Frontmatter, opts Options) string {
	contact := ""
	if opts.Layout == Horizontal {
		contact = Contact(fm, opts)
	}
	if fm.Name == "" && fm.Title == "" && contact == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<header class="cv-header keep-together">`)
	if fm.Name != "" {
		b.WriteString(`<h1 class="cv-name">` + Escape(fm.Name) + `</h1>`)
	}
	if fm.Title != "" {
		b.WriteString(`<p class="cv-title">` + Escape(fm.Title) + `</p>`)
	}
	b.WriteString(contact)
	b.WriteString(`</header>`)
	return b.String()
}
