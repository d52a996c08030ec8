package wada

// nameTranslations maps the Japanese palette names found in the upstream
// dataset to their customary English renderings.
var nameTranslations = map[string]string{
	"紅梅鼠": "Plum Mouse Gray",
	"海老茶": "Shrimp Brown",
	"深川鼠": "Fukagawa Mouse Gray",
	"桜鼠":  "Cherry Mouse Gray",
	"藍鼠":  "Indigo Mouse Gray",
	"柳鼠":  "Willow Mouse Gray",
	"鴬茶":  "Nightingale Brown",
	"海松茶": "Seaweed Brown",
	"紺青":  "Navy Blue",
	"臙脂":  "Crimson",
	"鶯色":  "Nightingale Green",
	"鶸茶":  "Siskin Brown",
	"青磁色": "Celadon",
	"小豆色": "Azuki Bean Red",
	"水色":  "Water Blue",
	"芥子色": "Mustard",
	"牡丹色": "Peony Pink",
	"青緑":  "Blue-Green",
	"山吹色": "Yamabuki Yellow",
	"桃色":  "Peach",
	"露草色": "Dayflower Blue",
	"萌黄":  "Spring Green",
	"浅葱色": "Light Indigo",
	"紅色":  "Crimson Red",
	"紫":   "Purple",
	"鼠色":  "Mouse Gray",
	"墨色":  "Ink Black",
	"白群":  "Pale Blue-Green",
	"若草色": "Young Grass Green",
	"桜色":  "Cherry Blossom Pink",
}

// TranslateName returns the English palette name when a translation is known,
// otherwise the name unchanged.
func TranslateName(name string) string {
	if english, ok := nameTranslations[name]; ok {
		return english
	}
	return name
}
