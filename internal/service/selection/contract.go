package selection

// Listener получает события выбора, которые контроллер сообщает вызывающей стороне.
// Методы вызываются синхронно внутри перехода и не должны обращаться к контроллеру
type Listener interface {
	OnDateSelect(isoDate string)
	OnTimeSelect(time string)
}

// ListenerFuncs адаптер для Listener из функций; nil-функции игнорируются
type ListenerFuncs struct {
	DateSelected func(isoDate string)
	TimeSelected func(time string)
}

func (f ListenerFuncs) OnDateSelect(isoDate string) {
	if f.DateSelected != nil {
		f.DateSelected(isoDate)
	}
}

func (f ListenerFuncs) OnTimeSelect(time string) {
	if f.TimeSelected != nil {
		f.TimeSelected(time)
	}
}
