package report

import "html/template"

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.DocumentName}} - clauselens</title>
<style>
:root {
  --bg: #282a36; --panel: #21222c; --border: #44475a; --fg: #f8f8f2;
  --muted: #6272a4; --safe: #50fa7b; --warning: #f1fa8c; --danger: #ff5555;
  --accent: #bd93f9;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: ui-sans-serif, system-ui, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1.5rem; max-width: 1200px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
.badge { display: inline-block; border: 1px solid; border-radius: 999px; padding: .25rem .75rem; font-weight: 700; font-size: .875rem; margin-top: .5rem; }
.safe { color: var(--safe); border-color: var(--safe); }
.warning { color: var(--warning); border-color: var(--warning); }
.danger { color: var(--danger); border-color: var(--danger); }
.neutral { color: var(--muted); border-color: var(--muted); }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.gauges { display: flex; flex-wrap: wrap; gap: 1rem; justify-content: center; margin-bottom: 1.5rem; }
figure { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; text-align: center; }
.charts { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; margin-bottom: 1.5rem; }
@media (max-width: 768px) { .charts { grid-template-columns: 1fr; } }
.chart-box { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.chart-box h3 { font-size: .875rem; margin-bottom: .5rem; color: var(--muted); text-transform: uppercase; }
.chart-box svg { max-width: 100%; height: auto; }
.empty { color: var(--muted); font-size: .875rem; padding: 2rem 0; text-align: center; }
section { margin-bottom: 1.5rem; }
section > h2 { font-size: 1.125rem; margin-bottom: .75rem; }
h3.group-title { font-size: .875rem; color: var(--muted); text-transform: uppercase; margin: .75rem 0 .5rem; }
table { width: 100%; border-collapse: collapse; font-size: .875rem; background: var(--panel); border: 1px solid var(--border); }
th, td { padding: .5rem .75rem; text-align: left; border-bottom: 1px solid var(--border); vertical-align: top; }
th { color: var(--muted); text-transform: uppercase; font-size: .75rem; }
.sev { font-weight: 700; text-transform: uppercase; font-size: .75rem; }
.quote { color: var(--muted); font-style: italic; }
.check-grid { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; }
@media (max-width: 768px) { .check-grid { grid-template-columns: 1fr; } }
.panel { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.panel h3 { font-size: .875rem; margin-bottom: .5rem; }
.panel ul { list-style: none; }
.panel li { padding: .25rem 0; border-bottom: 1px solid var(--border); font-size: .875rem; }
.panel li:last-child { border-bottom: none; }
.panel li .desc { display: block; color: var(--muted); font-size: .8125rem; }
.meter { height: 8px; background: var(--border); border-radius: 4px; overflow: hidden; margin: .5rem 0 1rem; }
.meter > div { height: 100%; background: var(--safe); }
.issue { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: .75rem 1rem; margin-bottom: .5rem; font-size: .875rem; }
.issue .token { color: var(--warning); font-weight: 700; }
.issue .hint { color: var(--muted); display: block; }
.summary { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; font-size: .9375rem; }
footer { color: var(--muted); font-size: .75rem; margin-top: 2rem; text-align: center; }
.tooltip { position: absolute; display: none; background: var(--panel); color: var(--fg); border: 1px solid var(--accent); border-radius: 6px; padding: .375rem .625rem; font-size: .8125rem; pointer-events: none; z-index: 10; max-width: 320px; }
.tooltip.visible { display: block; }
{{.RevealCSS}}
</style>
</head>
<body{{if .Reduced}} class="reduced"{{end}}>

<header class="reveal fade-in">
  <h1>{{.DocumentName}}</h1>
  <p>{{if .Language}}Language: {{.Language}}{{end}}{{if .Created}}{{if .Language}} &middot; {{end}}Analyzed {{.Created}}{{end}}</p>
  <span class="badge reveal tilt-in {{.Verdict.Tone}}">{{.Verdict.Label}}</span>
</header>

<section class="cards">
  {{range .Cards}}<div class="card"><div class="value {{.Tone}}">{{.Value}}</div><div class="label">{{.Label}}</div></div>
  {{end}}
</section>

<section class="gauges">
  {{range .Gauges}}<figure class="reveal slide-up" style="transition-delay: {{.Delay}}ms" data-tip="{{.Tip}}">{{.SVG}}</figure>
  {{end}}
</section>

<section class="charts">
  {{range .Charts}}<div class="chart-box reveal {{.Variant}}" style="transition-delay: {{.Delay}}ms" data-tip="{{.Tip}}">
    <h3>{{.Title}}</h3>
    {{if .Empty}}<div class="empty">{{.Empty}}</div>{{else}}{{.SVG}}{{end}}
  </div>
  {{end}}
</section>

<section class="reveal slide-left">
  <h2>Essential Clauses <span class="neutral">({{.Compliance.Percent}}%)</span></h2>
  <div class="meter"><div style="width: {{.Compliance.Percent}}%"></div></div>
  <div class="check-grid">
    <div class="panel">
      <h3 class="safe">Found ({{len .Compliance.Found}})</h3>
      {{if .Compliance.Found}}<ul>{{range .Compliance.Found}}<li>{{.}}</li>{{end}}</ul>{{else}}<div class="empty">Nothing on the checklist was found.</div>{{end}}
    </div>
    <div class="panel">
      <h3 class="danger">Missing ({{len .Compliance.Missing}})</h3>
      {{if .Compliance.Missing}}<ul>{{range .Compliance.Missing}}<li><span class="{{.Tone}}">{{.Label}}</span>{{if .Description}}<span class="desc">{{.Description}}</span>{{end}}</li>{{end}}</ul>{{else}}<div class="empty">Nothing missing.</div>{{end}}
    </div>
  </div>
</section>

<section class="reveal slide-up">
  <h2>Risk Findings</h2>
  {{if .Risks}}<table>
    <thead><tr><th>Severity</th><th>Type</th><th>Description</th><th>Clause</th></tr></thead>
    <tbody>
    {{range .Risks}}<tr>
      <td><span class="sev {{.Tone}}">{{.SeverityLabel}}</span></td>
      <td>{{.TypeLabel}}</td>
      <td>{{.Description}}</td>
      <td class="quote">{{.Snippet}}</td>
    </tr>
    {{end}}</tbody>
  </table>
  {{else}}<div class="empty">No risk findings.</div>{{end}}
</section>

<section class="reveal slide-left">
  <h2>Ambiguity <span class="{{.Ambiguity.Tone}}">({{.Ambiguity.Score}}/100)</span></h2>
  {{if .Ambiguity.Groups}}{{range .Ambiguity.Groups}}<h3 class="group-title">{{.Title}}</h3>
  {{range .Issues}}<div class="issue">
    {{if .Token}}<span class="token">{{.Token}}</span> {{end}}{{.Issue}}
    {{if .Suggestion}}<span class="hint">Suggestion: {{.Suggestion}}</span>{{end}}
    {{if .Snippet}}<span class="hint quote">{{.Snippet}}</span>{{end}}
  </div>
  {{end}}{{end}}{{else}}<div class="empty">No ambiguity issues.</div>{{end}}
</section>

{{if .Summary}}<section class="reveal fade-in">
  <h2>Summary</h2>
  <div class="summary">{{.Summary}}</div>
</section>{{end}}

<footer>clauselens report, generated {{.GeneratedAt}}</footer>

<script>
(function () {
  var reduced = document.body.classList.contains("reduced") ||
    window.matchMedia("(prefers-reduced-motion: reduce)").matches;
  var items = document.querySelectorAll(".reveal");
  if (reduced || !("IntersectionObserver" in window)) {
    items.forEach(function (el) { el.classList.add("shown"); });
    return;
  }
  var io = new IntersectionObserver(function (entries) {
    entries.forEach(function (entry) {
      if (!entry.isIntersecting) return;
      entry.target.classList.add("shown");
      io.unobserve(entry.target);
    });
  }, { threshold: 0.15 });
  items.forEach(function (el) { io.observe(el); });
})();

(function () {
  var tip = null;
  function ensure() {
    if (!tip) {
      tip = document.createElement("div");
      tip.className = "tooltip";
      document.body.appendChild(tip);
    }
    return tip;
  }
  document.querySelectorAll("[data-tip]").forEach(function (el) {
    el.addEventListener("mousemove", function (ev) {
      var t = ensure();
      t.textContent = el.getAttribute("data-tip");
      var r = el.getBoundingClientRect();
      var localX = ev.clientX - r.left;
      var localY = ev.clientY - r.top;
      t.style.left = (r.left + window.scrollX + localX + 14) + "px";
      t.style.top = (r.top + window.scrollY + localY - 30) + "px";
      t.classList.add("visible");
    });
    el.addEventListener("mouseleave", function () {
      if (tip) tip.classList.remove("visible");
    });
  });
})();
</script>
</body>
</html>
`
