package layout

import (
	"fmt"

	"levain/internal/views/theme"
)

func stylesheet(th theme.SheetTheme) string {
	return fmt.Sprintf(`body{margin:0;font-family:Georgia,serif;background:%s;color:%s}`+
		`.sheet{max-width:48rem;margin:0 auto;padding:1.5rem}`+
		`.card{background:%s;border:1px solid %s;border-radius:.5rem;margin:1rem 0;overflow:hidden}`+
		`.card-header{background:%s;padding:.75rem 1rem}`+
		`.eyebrow,.muted,.legend{color:%s;font-size:.8rem}`+
		`table{width:100%%;border-collapse:collapse;font-size:.9rem}`+
		`th,td{padding:.4rem 1rem;border-bottom:1px solid %s;text-align:left}`+
		`td.num,th.num{text-align:right;font-variant-numeric:tabular-nums}`+
		`tr.total{background:%s;font-weight:bold}`+
		`.badge{margin-left:.5rem;font-size:.75rem;color:%s}`+
		`.warn{color:%s;font-weight:bold}`+
		`@media print{body{background:#fff}.card{break-inside:avoid}}`,
		th.Background, th.Text,
		th.Surface, th.Border,
		th.Header,
		th.Muted,
		th.Border,
		th.Header,
		th.Accent,
		th.Warning,
	)
}
