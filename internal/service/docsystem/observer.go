package docsystem

import docsysSvc "kbportal/internal/domain/services/docsystem"

type noopObserver struct{}

func (noopObserver) ObserveOperation(string, error) {}
func (noopObserver) ObserveIngested()               {}

func orNoop(o docsysSvc.OperationObserver) docsysSvc.OperationObserver {
	if o == nil {
		return noopObserver{}
	}
	return o
}
