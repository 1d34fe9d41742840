package server

import "net/http"

// handleMap serves GET /map: the embedded slippy-map viewer. spec.md §1
// names this as an external collaborator (rendering, tile-layer wiring,
// pan/zoom) specified only at the boundary; this handler is the thin host
// page that points a Leaflet-style map at /tiles/{layer}/{z}/{x}/{y}.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(mapViewerHTML))
}

// handleStats serves GET /stats: the dashboard shell that connects to
// /stats/ws for its live numbers. The rendering of those numbers into charts
// is, like the map viewer, an external collaborator (spec.md §1).
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(statsShellHTML))
}

const mapViewerHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>geotiles</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet/dist/leaflet.css">
<style>html,body,#map{height:100%;margin:0}</style>
</head>
<body>
<div id="map"></div>
<script src="https://unpkg.com/leaflet/dist/leaflet.js"></script>
<script>
const map = L.map('map').setView([0, 0], 2);
fetch('/layers').then(r => r.json()).then(layers => {
  if (!layers.length) return;
  const l = layers[0];
  L.tileLayer('/tiles/' + l.layer + '/{z}/{x}/{y}?style=' + encodeURIComponent(l.style), {
    maxZoom: 18,
  }).addTo(map);
});
</script>
</body>
</html>
`

const statsShellHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>geotiles stats</title>
</head>
<body>
<pre id="stats">connecting...</pre>
<script>
const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/stats/ws');
ws.onmessage = (ev) => { document.getElementById('stats').textContent = ev.data; };
</script>
</body>
</html>
`
