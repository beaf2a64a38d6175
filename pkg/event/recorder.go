package event

// Recorder collects events in arrival order.
type Recorder struct {
	Events []Event
}

// Listen registers the recorder for kinds on r.
func (rec *Recorder) Listen(r *Registry, kinds ...Kind) []Handle {
	handles := make([]Handle, len(kinds))
	for i, k := range kinds {
		handles[i] = r.Register(k, func(ev Event, _ Inspector) {
			rec.Events = append(rec.Events, ev)
		})
	}
	return handles
}

// Strings returns the String form of every recorded event.
func (rec *Recorder) Strings() []string {
	out := make([]string, len(rec.Events))
	for i, ev := range rec.Events {
		out[i] = ev.String()
	}
	return out
}

// OfKind returns the recorded events of kind k.
func (rec *Recorder) OfKind(k Kind) []Event {
	var out []Event
	for _, ev := range rec.Events {
		if ev.Kind() == k {
			out = append(out, ev)
		}
	}
	return out
}
