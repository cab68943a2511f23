package web

import (
	vm "github.com/ericfisherdev/readtrack/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/readtrack/internal/application"
	"github.com/ericfisherdev/readtrack/internal/domain/model"
)

// toEntryViewModel converts a domain ReadingEntry to an EntryViewModel.
func toEntryViewModel(e model.ReadingEntry) vm.EntryViewModel {
	return vm.EntryViewModel{
		Title:       e.Title,
		Type:        string(e.Type),
		Status:      e.Status(),
		CurrentPart: e.CurrentPart,
		LineHTML:    RenderMarkdown(EntryLineMarkdown(e)),
	}
}

// toEntryViewModels converts domain entries, keeping their order.
func toEntryViewModels(entries []model.ReadingEntry) []vm.EntryViewModel {
	vms := make([]vm.EntryViewModel, 0, len(entries))
	for _, e := range entries {
		vms = append(vms, toEntryViewModel(e))
	}
	return vms
}

// typeOptions lists the reading types, marking selected.
func typeOptions(selected string) []vm.Option {
	types := model.ReadingTypes()
	opts := make([]vm.Option, 0, len(types))
	for _, t := range types {
		opts = append(opts, vm.Option{Value: string(t), Label: string(t), Selected: string(t) == selected})
	}
	return opts
}

// filterOptions lists "All" followed by the reading types.
func filterOptions(selected string) []vm.Option {
	opts := []vm.Option{{Value: application.FilterAll, Label: application.FilterAll, Selected: selected == application.FilterAll}}
	return append(opts, typeOptions(selected)...)
}

// sortOptions lists the supported sort keys.
func sortOptions(selected application.SortKey) []vm.Option {
	keys := application.SortKeys()
	opts := make([]vm.Option, 0, len(keys))
	for _, k := range keys {
		opts = append(opts, vm.Option{Value: string(k), Label: string(k), Selected: k == selected})
	}
	return opts
}

// selectOptions lists entries for the update form as "Title (type)".
func selectOptions(entries []model.ReadingEntry, selected string) []vm.Option {
	opts := make([]vm.Option, 0, len(entries))
	for _, e := range entries {
		opts = append(opts, vm.Option{
			Value:    e.Title,
			Label:    e.Title + " (" + string(e.Type) + ")",
			Selected: e.Title == selected,
		})
	}
	return opts
}
