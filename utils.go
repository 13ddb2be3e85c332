package routemanager

import "github.com/valyala/bytebufferpool"

// writeResult writes one "exit <id>" or "enter <id>" line per hook call of
// the result, in call order, followed by one "param <name>=<value>" line per
// merged param.
func writeResult(buf *bytebufferpool.ByteBuffer, res *Result) {
	for _, link := range res.Transition.Exit {
		buf.WriteString("exit ")
		buf.WriteString(link.State.ID())
		buf.WriteByte('\n')
	}

	for _, link := range res.Transition.Enter {
		buf.WriteString("enter ")
		buf.WriteString(link.State.ID())
		buf.WriteByte('\n')
	}

	for _, name := range res.Transition.Params.Names() {
		buf.WriteString("param ")
		buf.WriteString(name)
		buf.WriteByte('=')
		buf.WriteString(res.Transition.Params[name])
		buf.WriteByte('\n')
	}
}

// String renders the result as written by the HTTP handler.
func (res *Result) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeResult(buf, res)

	return buf.String()
}
