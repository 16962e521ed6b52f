package mocks

//go:generate mockgen -destination=runner.go -package=mocks github.com/contract-patterns/vmp-go-base/program Runner
