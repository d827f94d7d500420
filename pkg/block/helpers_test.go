package block

func action(name string, components ...Component) *StatementBehaviour {
	return NewTemplateBehaviour(name, StatementAction, Template(name), Template(name), components...)
}

func condition(name string) *StatementBehaviour {
	return NewTemplateBehaviour(name, StatementCondition, Template(name+"()"), "it is "+Template(name))
}

func mustSpineT(minimum int) *Spine {
	s, err := NewSpine(minimum)
	if err != nil {
		panic(err)
	}
	return s
}
