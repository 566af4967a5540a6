package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/andewx/vkboot"
)

// ListDevices creates a headless session and prints every physical device,
// marking the one the configured policy would select for a headless renderer.
// An auto policy resolves as it does for Init(nil).
func ListDevices(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return exitError(err)
	}
	driver, err := vkboot.NewVulkanDriver(nil)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	session, err := vkboot.SessionFactory{Driver: driver, Config: cfg}.
		CreateSession(nil, cfg.ValidationLayers, cfg.Diagnostics)
	if err != nil {
		return exitError(err)
	}
	defer session.Destroy()

	selector := vkboot.DeviceSelector{
		Driver:  driver,
		Policy:  cfg.Policy,
		Exclude: cfg.ExcludeDevices,
	}
	accelerators, err := selector.Enumerate(session)
	if err != nil {
		return exitError(err)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Device", "Type", "API", "Queue families", "Status"})

	picked := false
	for _, a := range accelerators {
		indices, reason, err := selector.Evaluate(a, nil)
		status := reason
		switch {
		case err != nil:
			status = err.Error()
		case reason == "" && !picked:
			status = fmt.Sprintf("selected, graphics family %d", indices.Graphics)
			picked = true
		case reason == "":
			status = "suitable"
		}
		table.Append([]string{
			fmt.Sprintf("%02d", a.Index),
			a.Properties.Name,
			a.Properties.Type.String(),
			a.Properties.APIVersion.String(),
			describeFamilies(a.QueueFamilies),
			status,
		})
	}
	table.SetFooter([]string{"", "", "", "", "POLICY", cfg.Policy.Resolve(nil).String()})

	fmt.Fprintf(ctx.App.Writer, "\nSystem provides %d physical device(s):\n\n", len(accelerators))
	table.Render()
	return nil
}

func describeFamilies(families []vkboot.QueueFamily) string {
	parts := make([]string, 0, len(families))
	for _, f := range families {
		var caps []string
		if f.Flags&vkboot.QueueGraphics != 0 {
			caps = append(caps, "G")
		}
		if f.Flags&vkboot.QueueCompute != 0 {
			caps = append(caps, "C")
		}
		if f.Flags&vkboot.QueueTransfer != 0 {
			caps = append(caps, "T")
		}
		parts = append(parts, fmt.Sprintf("%d:%s x%d", f.Index, strings.Join(caps, ""), f.Count))
	}
	return strings.Join(parts, " ")
}

// ListLayers prints the instance layers the loader exposes.
func ListLayers(ctx *cli.Context) error {
	setupLogging(ctx)
	return listNames(ctx, "layer", func(p vkboot.Probe) (vkboot.NameSet, error) {
		return p.InstanceLayers()
	})
}

// ListExtensions prints the instance extensions the loader exposes.
func ListExtensions(ctx *cli.Context) error {
	setupLogging(ctx)
	return listNames(ctx, "extension", func(p vkboot.Probe) (vkboot.NameSet, error) {
		return p.InstanceExtensions()
	})
}

func listNames(ctx *cli.Context, what string, query func(vkboot.Probe) (vkboot.NameSet, error)) error {
	driver, err := vkboot.NewVulkanDriver(nil)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	names, err := query(vkboot.Probe{Driver: driver})
	if err != nil {
		return exitError(err)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Instance " + what})
	for _, name := range names.Sorted() {
		table.Append([]string{name})
	}
	table.SetFooter([]string{fmt.Sprintf("%d available", len(names))})
	table.Render()
	return nil
}
