package render

const textTemplate = `SwiftRail booking confirmation

Order reference: {{.OrderReference}}
Purchased: {{stamp .PurchasedAt}}
{{- if .Degraded}}

Your booking was recorded under a provisional reference. Keep this email as
proof of purchase.
{{- end}}
{{range .Groups}}
{{.Title}}
{{- range .Legs}}
  {{.Label}} - ticket {{.Number}}
{{- if .Unavailable}}
    Reference unavailable, seat {{.Seat}}. Contact support with your order reference.
{{- else}}
    {{.Departure}} -> {{.Arrival}}, train {{.TrainRef}}
    {{.Date}} {{.Time}}{{if .ArrivalTime}} - arrives {{.ArrivalTime}}{{end}}
    Seat: {{.Seat}}
    Options: {{optionSummary .Options}}
    Ticket reference: {{.Reference}}
    Boarding code: {{.BoardingCode}}
    Price: {{money .Price}} EUR
{{- end}}
{{- end}}
{{end}}
Total: {{money .Total}} EUR
`

const htmlTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif">
<h1>SwiftRail booking confirmation</h1>
<p>Order reference: <strong>{{.OrderReference}}</strong><br>
Purchased: {{stamp .PurchasedAt}}</p>
{{- if .Degraded}}
<p><em>Your booking was recorded under a provisional reference. Keep this email as proof of purchase.</em></p>
{{- end}}
{{- range .Groups}}
<h2>{{.Title}}</h2>
{{- range .Legs}}
<h3>{{.Label}} - ticket {{.Number}}</h3>
{{- if .Unavailable}}
<p>Reference unavailable, seat {{.Seat}}. Contact support with your order reference.</p>
{{- else}}
<table>
<tr><td>Route</td><td>{{.Departure}} &rarr; {{.Arrival}}</td></tr>
<tr><td>Train</td><td>{{.TrainRef}}</td></tr>
<tr><td>Departure</td><td>{{.Date}} {{.Time}}</td></tr>
{{- if .ArrivalTime}}
<tr><td>Arrival</td><td>{{.ArrivalTime}}</td></tr>
{{- end}}
<tr><td>Seat</td><td>{{.Seat}}</td></tr>
<tr><td>Options</td><td>{{if .Options}}{{range $i, $o := .Options}}{{if $i}}, {{end}}{{$o.Label}} (+{{money $o.Price}}){{end}}{{else}}none{{end}}</td></tr>
<tr><td>Ticket reference</td><td>{{.Reference}}</td></tr>
<tr><td>Boarding code</td><td><code>{{.BoardingCode}}</code></td></tr>
<tr><td>Price</td><td>{{money .Price}} EUR</td></tr>
</table>
{{- end}}
{{- end}}
{{- end}}
<p><strong>Total: {{money .Total}} EUR</strong></p>
</body>
</html>
`
