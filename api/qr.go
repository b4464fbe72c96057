package api

import (
	"bytes"
	"html/template"
	"net/http"
)

type pageData struct {
	Business string
	Payload  string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Business: s.Kiosk.Business(),
		Payload:  s.Kiosk.Payload(),
	})
	if err != nil {
		s.Log.Error("render page failed", "error", err)
		writeError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>QR Generator - {{.Business}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: Arial, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #f0f2f5;
    color: #222;
    display: flex;
    justify-content: center;
    align-items: center;
    min-height: 100vh;
  }
  .card {
    background: #fff;
    border: 1px solid #ddd;
    border-radius: 16px;
    padding: 32px;
    text-align: center;
    max-width: 460px;
    width: 100%;
  }
  h1 { font-size: 20px; font-weight: 600; margin-bottom: 16px; }
  button {
    font-size: 15px; font-weight: 600;
    background: #007bff; color: #fff;
    border: none; border-radius: 6px;
    padding: 10px 16px; cursor: pointer;
  }
  button:disabled { opacity: .6; cursor: wait; }
  #qr-container {
    width: 220px; height: 220px;
    margin: 20px auto;
    display: flex;
    align-items: center;
    justify-content: center;
  }
  #qr-container img { width: 200px; height: 200px; image-rendering: pixelated; }
  label { display: block; text-align: left; font-size: 14px; margin-bottom: 4px; }
  textarea {
    width: 100%; height: 120px; padding: 8px;
    font-family: Arial, sans-serif; font-size: 13px;
    border: 1px solid #333; resize: vertical;
  }
  #status { font-size: 13px; color: #555; margin-top: 10px; min-height: 18px; }
  .error { color: #c62828 !important; }
  .ok { color: #2e7d32 !important; }
  a { color: #007bff; font-size: 12px; word-break: break-all; }
</style>
</head>
<body>
<div class="card">
  <h1>Google Review QR Code</h1>
  <button id="generate" type="button">Generate QR Code &amp; Copy Review</button>
  <div id="qr-container"></div>
  <label for="review">AI Review Suggestion (Copied to Clipboard):</label>
  <textarea id="review" readonly></textarea>
  <div id="status"></div>
  <p><a href="{{.Payload}}" target="_blank" rel="noopener">{{.Payload}}</a></p>
</div>
<script>
(function() {
  var button = document.getElementById('generate');
  var container = document.getElementById('qr-container');
  var reviewEl = document.getElementById('review');
  var statusEl = document.getElementById('status');
  var img = null;

  function setStatus(text, cls) {
    statusEl.textContent = text;
    statusEl.className = cls || '';
  }

  function copyReview(text) {
    if (navigator.clipboard && window.isSecureContext) {
      return navigator.clipboard.writeText(text);
    }
    reviewEl.focus();
    reviewEl.select();
    return document.execCommand('copy') ? Promise.resolve() : Promise.reject();
  }

  button.addEventListener('click', function() {
    button.disabled = true;
    setStatus('Generating...');
    fetch('/generate', { method: 'POST' })
      .then(function(r) {
        return r.json().then(function(data) {
          if (!r.ok) { throw new Error(data.error || 'request failed'); }
          return data;
        });
      })
      .then(function(data) {
        if (!img) {
          img = document.createElement('img');
          img.setAttribute('alt', 'Review QR Code');
          container.appendChild(img);
        }
        img.setAttribute('src', 'data:image/png;base64,' + data.qr_png);
        reviewEl.value = data.review;
        return copyReview(data.review).then(function() {
          setStatus('QR Code Generated! The suggested review has been copied to your clipboard.', 'ok');
        }, function() {
          setStatus('QR Code Generated! Select the review above to copy it.', 'ok');
        });
      })
      .catch(function() {
        setStatus('An unexpected error occurred', 'error');
      })
      .then(function() { button.disabled = false; });
  });
})();
</script>
</body>
</html>`
