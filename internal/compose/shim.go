package compose

// navShim is the script appended as the final body content of every
// composed document. It runs inside the sandboxed iframe: a single
// delegated click listener intercepts internal page links and reports them
// to the embedding host via postMessage; hash changes report section
// navigation. The host decides whether and how to recompose; the shim
// itself never mutates the document.
const navShim = `<script>
(function () {
  "use strict";
  function post(msg) {
    try { window.parent.postMessage(msg, "*"); } catch (e) {}
  }
  function normalize(href) {
    return href.split("#")[0].split("?")[0].replace(/^\.\//, "");
  }
  function isInternalPage(href) {
    if (!href || href.indexOf("://") !== -1 || href.indexOf("//") === 0) return false;
    return /\.html?$/i.test(normalize(href));
  }
  document.addEventListener("click", function (ev) {
    var el = ev.target;
    while (el && el !== document && (!el.tagName || el.tagName !== "A")) {
      el = el.parentElement;
    }
    if (!el || el === document || !el.getAttribute) return;
    var href = el.getAttribute("href");
    if (!href) return;
    if (href.charAt(0) === "#") {
      post({ type: "NAVIGATE_TO_SECTION", hash: href });
      return;
    }
    if (isInternalPage(href)) {
      ev.preventDefault();
      post({ type: "NAVIGATE_TO_PAGE", targetFile: normalize(href) });
    }
  }, true);
  window.addEventListener("hashchange", function () {
    post({ type: "NAVIGATE_TO_SECTION", hash: window.location.hash });
  });
})();
</script>`
