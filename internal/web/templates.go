package web

const indexTemplate = "index"

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Todo List</title>
</head>
<body>
<h1>Todo List</h1>
<hr>
<nav>
<a href="/">All List</a>
<a href="/?todos=active">Active List</a>
<a href="/?todos=completed">Completed List</a>
</nav>
<hr>
{{if .Warning}}<p class="warning">{{.Warning}}</p>{{end}}
<form method="post" action="/tasks">
<input type="hidden" name="todos" value="{{.Filter}}">
<input type="text" name="task">
<button type="submit">Add</button>
</form>
<ul>
{{range .Tasks}}<li>
<form method="post" action="/tasks/{{.ID}}/toggle" style="display:inline">
<input type="hidden" name="todos" value="{{$.Filter}}">
<input type="checkbox" id="{{.ID}}" {{if .Completed}}checked{{end}} onchange="this.form.submit()">
<label for="{{.ID}}">{{.Text}}</label>
</form>
{{if .Completed}}<form method="post" action="/tasks/{{.ID}}/delete" style="display:inline">
<input type="hidden" name="todos" value="{{$.Filter}}">
<button type="submit">Delete</button>
</form>{{end}}
</li>
{{end}}</ul>
</body>
</html>
`
