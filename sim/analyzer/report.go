package analyzer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Report writes the comparison tables. It only reads the aggregates and can
// be called any number of times.
func (a *Analyzer) Report(w io.Writer, daemonAvailable bool) error {
	return WriteReport(w, a.Summary(), daemonAvailable)
}

// WriteReport renders s to w.
func WriteReport(w io.Writer, s Summary, daemonAvailable bool) error {
	if _, err := fmt.Fprintln(w, "=== Performance Analysis ==="); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Regime", "Events", "Packets lost", "Avg outage (ms)", "Avg detection (ms)", "Modifications"})
	table.Append(metricsRow("Standard OSPF", s.Standard))
	table.Append(metricsRow("SATNET-OSPF RFP", s.RFP))
	table.Render()

	if _, err := fmt.Fprintln(w, "=== Improvement ==="); err != nil {
		return err
	}
	imp := tablewriter.NewWriter(w)
	imp.SetAutoWrapText(false)
	imp.SetBorder(false)
	imp.SetAlignment(tablewriter.ALIGN_LEFT)
	switch {
	case s.Standard.AvgOutage() > 0:
		imp.Append([]string{"Route outage", fmt.Sprintf("%s ms -> %s ms (%.1fx improvement)",
			formatMs(s.Standard.AvgOutage()), formatMs(s.RFP.AvgOutage()), s.OutageImprovement())})
	case s.RFP.Events > 0:
		imp.Append([]string{"RFP route outage", formatMs(s.RFP.AvgOutage()) + " ms (no standard OSPF baseline)"})
	}
	if s.Standard.PacketsLost > 0 || s.RFP.PacketsLost > 0 {
		imp.Append([]string{"Packet loss", fmt.Sprintf("%d -> %d packets", s.Standard.PacketsLost, s.RFP.PacketsLost)})
	}
	if s.Standard.AvgDetection() > 0 {
		imp.Append([]string{"Detection time", fmt.Sprintf("%s ms -> %s ms (%.1fx faster)",
			formatMs(s.Standard.AvgDetection()), formatMs(s.RFP.AvgDetection()), s.DetectionImprovement())})
	}
	imp.Append([]string{"Total modifications", strconv.Itoa(s.TotalModifications())})
	imp.Append([]string{"vtysh status", daemonStatus(daemonAvailable)})
	imp.Append([]string{"Packets", fmt.Sprintf("sent=%d received=%d", s.PacketsSent, s.PacketsReceived)})
	imp.Render()
	return nil
}

func metricsRow(name string, m Metrics) []string {
	return []string{
		name,
		strconv.Itoa(m.Events),
		strconv.FormatInt(m.PacketsLost, 10),
		formatMs(m.AvgOutage()),
		formatMs(m.AvgDetection()),
		strconv.Itoa(m.Modifications),
	}
}

func formatMs(seconds float64) string {
	return strconv.FormatFloat(ms(seconds), 'f', 1, 64)
}

func daemonStatus(available bool) string {
	if available {
		return "REAL"
	}
	return "SIMULATED"
}
