package browser

// stylesheetModelJS serializes document.styleSheets into the shared sheet
// model. Reading cssRules on a cross-origin sheet throws a SecurityError;
// those sheets are marked inaccessible instead of aborting the walk.
const stylesheetModelJS = `(() => {
	const sheets = [];
	for (const sheet of document.styleSheets) {
		const out = { href: sheet.href || "", accessible: true, rules: [] };
		let rules;
		try {
			rules = sheet.cssRules;
		} catch (e) {
			out.accessible = false;
			sheets.push(out);
			continue;
		}
		const readProps = (style) => {
			const props = {};
			for (const name of style) {
				props[name] = style.getPropertyValue(name);
			}
			return props;
		};
		for (const rule of rules) {
			if (rule.type === CSSRule.MEDIA_RULE) {
				const children = [];
				for (const inner of rule.cssRules) {
					if (inner.type === CSSRule.STYLE_RULE) {
						children.push({ kind: "style", selector: inner.selectorText, properties: readProps(inner.style) });
					} else {
						children.push({ kind: "other", condition: inner.cssText.split("{")[0].trim() });
					}
				}
				out.rules.push({ kind: "media", condition: rule.conditionText || rule.media.mediaText, children: children });
			} else if (rule.type === CSSRule.STYLE_RULE) {
				out.rules.push({ kind: "style", selector: rule.selectorText, properties: readProps(rule.style) });
			} else if (rule.type === CSSRule.FONT_FACE_RULE) {
				out.rules.push({ kind: "font-face", properties: readProps(rule.style) });
			} else {
				out.rules.push({ kind: "other", condition: rule.cssText.split("{")[0].trim() });
			}
		}
		sheets.push(out);
	}
	return sheets;
})()`

// viewportMetricsJS measures the document at the current viewport width.
const viewportMetricsJS = `(() => {
	const doc = document.documentElement;
	return {
		innerWidth: window.innerWidth,
		innerHeight: window.innerHeight,
		scrollWidth: doc.scrollWidth,
		scrollHeight: doc.scrollHeight,
		hasHorizontalOverflow: doc.scrollWidth > window.innerWidth,
		visibleNavElements: [...document.querySelectorAll("nav, [role=navigation], header ul")]
			.filter(el => el.offsetParent !== null).length
	};
})()`

// visibleMenuElementsJS lists currently visible navigation-ish elements, used
// before/after a menu-toggle click to diff what appeared.
const visibleMenuElementsJS = `(() => {
	const described = (el) => {
		let sel = el.tagName.toLowerCase();
		if (el.id) sel += "#" + el.id;
		else if (el.classList.length) sel += "." + [...el.classList].join(".");
		const rect = el.getBoundingClientRect();
		return { selector: sel, x: rect.x, y: rect.y, width: rect.width, height: rect.height };
	};
	return [...document.querySelectorAll("nav, [role=navigation], .menu, .nav, ul")]
		.filter(el => el.offsetParent !== null && el.getBoundingClientRect().width > 0)
		.map(described);
})()`

// findMenuToggleJS returns the selector of the first visible hamburger-style
// toggle, or null.
const findMenuToggleJS = `(() => {
	const candidates = [
		".hamburger", ".menu-toggle", ".navbar-toggler", ".navbar-burger",
		".burger", "#menu-button", "[aria-label*='menu' i]", "button[aria-expanded]",
		"[class*='menu-btn']", "[class*='nav-toggle']"
	];
	for (const sel of candidates) {
		const el = document.querySelector(sel);
		if (el && el.offsetParent !== null) return sel;
	}
	return null;
})()`
