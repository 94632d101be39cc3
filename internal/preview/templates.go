package preview

// hostPage embeds the composed document in a sandboxed iframe and relays
// navigation between the frame's shim and the bridge WebSocket. The frame
// itself never talks to the server; everything crosses via postMessage.
const hostPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}} - preview</title>
<style>
  html, body { margin: 0; height: 100%; font-family: system-ui, sans-serif; }
  #toolbar { display: flex; align-items: center; gap: 0.5rem; padding: 0.5rem 0.75rem; background: #1e293b; color: #e2e8f0; }
  #toolbar select { padding: 0.25rem; }
  #status { margin-left: auto; font-size: 0.8rem; opacity: 0.7; }
  #frame { width: 100%; height: calc(100% - 2.6rem); border: 0; background: #fff; }
</style>
</head>
<body>
<div id="toolbar">
  <strong>{{.Name}}</strong>
  <select id="pages"></select>
  <span id="status">connecting...</span>
</div>
<iframe id="frame" sandbox="allow-scripts"></iframe>
<script>
(function () {
  "use strict";
  var frame = document.getElementById("frame");
  var pageSelect = document.getElementById("pages");
  var status = document.getElementById("status");
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/api/projects/{{.ProjectID}}/bridge");

  ws.onopen = function () { status.textContent = "connected"; };
  ws.onclose = function () { status.textContent = "disconnected"; };

  ws.onmessage = function (ev) {
    var msg;
    try { msg = JSON.parse(ev.data); } catch (e) { return; }
    if (msg.type === "PAGE_DOCUMENT") {
      frame.srcdoc = msg.document;
      renderPages(msg.pages || [], msg.targetFile);
      status.textContent = msg.targetFile;
    } else if (msg.type === "ERROR") {
      status.textContent = msg.message;
    }
  };

  function renderPages(pages, current) {
    pageSelect.innerHTML = "";
    pages.forEach(function (p) {
      var opt = document.createElement("option");
      opt.value = p;
      opt.textContent = p;
      opt.selected = p === current;
      pageSelect.appendChild(opt);
    });
  }

  pageSelect.addEventListener("change", function () {
    ws.send(JSON.stringify({ type: "NAVIGATE_TO_PAGE", targetFile: pageSelect.value }));
  });

  // The shim inside the frame posts navigation intents here.
  window.addEventListener("message", function (ev) {
    var msg = ev.data;
    if (!msg || typeof msg.type !== "string") return;
    if (msg.type === "NAVIGATE_TO_PAGE" || msg.type === "NAVIGATE_TO_SECTION") {
      if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
    }
  });
})();
</script>
</body>
</html>`
