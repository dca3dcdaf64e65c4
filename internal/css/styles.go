package css

// Base is the reset and body typography.
func Base() string {
	return `/* Base */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}
html {
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
body {
  font-family: var(--cv-font-body, system-ui, -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif);
  font-size: var(--cv-font-size-base, 10pt);
  line-height: var(--cv-line-height, 1.45);
  color: var(--cv-color-text, #1f2937);
  background: transparent;
  -webkit-font-smoothing: antialiased;
  text-rendering: optimizeLegibility;
}
h1, h2, h3 {
  font-family: var(--cv-font-heading, var(--cv-font-body, system-ui, sans-serif));
  color: var(--cv-color-heading, #111827);
  line-height: 1.2;
}
a {
  color: var(--cv-color-link, var(--cv-color-primary, #2563eb));
  text-decoration: none;
}
strong {
  font-weight: 600;
}
`
}

// Photo styles the photo block.
func Photo() string {
	return `/* Photo */
.cv-photo {
  display: flex;
  justify-content: center;
  margin-bottom: 6mm;
}
.cv-photo-img {
  display: block;
  width: var(--cv-photo-size, 36mm);
  height: var(--cv-photo-size, 36mm);
  object-fit: cover;
  border-radius: var(--cv-photo-radius, 50%);
}
`
}

// Contact styles the contact block in both layouts.
func Contact() string {
	return `/* Contact */
.cv-contact {
  margin-bottom: var(--cv-section-spacing, 6mm);
}
.cv-contact-list {
  list-style: none;
  display: flex;
}
.cv-contact-vertical .cv-contact-list {
  flex-direction: column;
  gap: 1.5mm;
}
.cv-contact-horizontal .cv-contact-list {
  flex-wrap: wrap;
  gap: 1mm 5mm;
}
.cv-contact-item {
  font-size: 0.92em;
  overflow-wrap: anywhere;
}
.cv-contact-link {
  color: inherit;
}
`
}

// NameHeader styles the name, title and horizontal contact row.
func NameHeader() string {
	return `/* Name header */
.cv-header {
  margin-bottom: var(--cv-section-spacing, 6mm);
}
.cv-name {
  font-size: var(--cv-font-size-name, 24pt);
  font-weight: 700;
  letter-spacing: -0.01em;
}
.cv-title {
  margin-top: 1mm;
  font-size: 1.15em;
  color: var(--cv-color-primary, #2563eb);
}
.cv-header .cv-contact {
  margin: 3mm 0 0;
}
`
}

// Core styles sections, entries, lists and skills.
func Core() string {
	return `/* Core */
.cv-section {
  margin-bottom: var(--cv-section-spacing, 6mm);
}
.cv-section-title {
  font-size: var(--cv-font-size-section, 12pt);
  font-weight: 700;
  text-transform: uppercase;
  letter-spacing: 0.06em;
  margin-bottom: 2.5mm;
}
.cv-paragraph {
  margin-bottom: 1.5mm;
}
.cv-list,
.cv-entry-bullets {
  padding-left: 4.5mm;
}
.cv-list li,
.cv-entry-bullets li {
  margin-bottom: 0.8mm;
}
.cv-entry {
  margin-bottom: var(--cv-entry-spacing, 4mm);
}
.cv-entry-header {
  margin-bottom: 1.5mm;
}
.cv-entry-title {
  font-size: 1.08em;
  font-weight: 600;
}
.cv-entry-meta {
  display: flex;
  flex-wrap: wrap;
  gap: 0 3mm;
  font-size: 0.92em;
  color: var(--cv-color-muted, #6b7280);
}
.cv-entry-company {
  font-weight: 600;
  color: var(--cv-color-accent, var(--cv-color-text, #1f2937));
}
.cv-entry-paragraph {
  margin-bottom: 1.2mm;
}
.cv-skill-category {
  margin-bottom: 3mm;
}
.cv-skill-category-title {
  font-size: 0.95em;
  font-weight: 600;
  margin-bottom: 1.5mm;
}
.cv-skill-list-pill {
  display: flex;
  flex-wrap: wrap;
  gap: 1.5mm;
}
.cv-skill-pill {
  display: inline-block;
  padding: 0.6mm 2.4mm;
  border-radius: var(--cv-pill-radius, 999px);
  background: var(--cv-color-pill-bg, #e5e7eb);
  color: var(--cv-color-pill-text, #1f2937);
  font-size: 0.88em;
  line-height: 1.35;
}
.cv-skill-separator {
  color: var(--cv-color-muted, #6b7280);
}
`
}

// SectionHeaderSkin styles section titles differently per column.
func SectionHeaderSkin() string {
	return `/* Section headers */
.cv-sidebar {
  color: var(--cv-color-sidebar-text, var(--cv-color-text, #1f2937));
}
.cv-sidebar .cv-section-title {
  font-size: 0.98em;
  color: var(--cv-color-sidebar-text, var(--cv-color-heading, #111827));
  margin-bottom: 2mm;
}
.cv-main .cv-section-title {
  color: var(--cv-color-primary, #2563eb);
  padding-bottom: 1mm;
  border-bottom: var(--cv-section-rule, 1.5px) solid var(--cv-color-border, currentColor);
}
`
}
