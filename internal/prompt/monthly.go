package prompt

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ppiankov/maarifplan/internal/model"
)

// mandatoryPreview caps the items repeated in the warning at the top of
// the monthly prompt; each section still lists every selection
const mandatoryPreview = 5

// monthlySection is one numbered section of the requested plan layout
type monthlySection struct {
	title    string
	category model.Category // Selections listed as mandatory, if any
	rules    string
}

var monthlyLayout = []monthlySection{
	{title: "ALAN BECERİLERİ", category: model.CategoryAreaSkill, rules: `⚠️ SADECE verilen kazanımlardaki alanları ve kodları kullan!
Her alan için "### X Alanı:" başlığı ve altında KOD ve KISA AÇIKLAMA yaz.
Örnek:
### Matematik Alanı:
MAB1. Sayma`},
	{title: "KAVRAMSAL BECERİLER", category: model.CategoryConceptualSkill, rules: `⚠️ HER SATIRI TAM OLARAK YAZ! Her satır kodla başlamalı.
KB1.1 Saymak`},
	{title: "EĞİLİMLER", category: model.CategoryTendency, rules: `⚠️ HER SATIRI TAM OLARAK YAZ! Her satır kodla başlamalı.
E1. Benlik Eğilimleri - E1.1. Merak`},
	{title: "SOSYAL-DUYGUSAL ÖĞRENME BECERİLERİ", category: model.CategorySocialEmotional, rules: `⚠️ HER SATIRI TAM OLARAK YAZ! Her satır kodla başlamalı.
SDB2.1. İletişim Becerisi`},
	{title: "DEĞERLER", category: model.CategoryValue, rules: `Her değer bir kez yazılmalı.
D3. Çalışkanlık`},
	{title: "OKURYAZARLIK BECERİLERİ", category: model.CategoryLiteracy, rules: `OB4. Görsel Okuryazarlık`},
	{title: "ÖĞRENME ÇIKTILARI VE SÜREÇ BİLEŞENLERİ", category: model.CategoryLearningOutcome, rules: `⚠️ HER KAZANIMI AYRI SATIRA YAZ!
Her dersin çıktılarını "DERS ADI:" satırının altında listele.`},
	{title: "ANAHTAR KAVRAMLAR", rules: `Virgülle ayrılmış kısa kavramlar. Örnek: Sesli-Sessiz, Gece-Gündüz, Az-Çok`},
	{title: "ÖĞRENME KANITLARI (ÖLÇME VE DEĞERLENDİRME)", rules: `### Çocuklar Yönünden Değerlendirme
[Değerlendirme kriterleri]

### Program Yönünden Değerlendirme
[Program değerlendirme kriterleri]

### Öğretmen Yönünden Değerlendirme
[Öğretmen öz değerlendirme kriterleri]`},
	{title: "ÖĞRENME-ÖĞRETME YAŞANTILARI", rules: `Etkinlik sonlarında ilgili kodları parantez içinde yaz. Format: (E1.2, KB1.1, D1)`},
	{title: "FARKLILAŞTIRMA VE ZENGİNLEŞTİRME", rules: `[Bireysel farklılıkları gözeten yaklaşımlar]`},
	{title: "DESTEKLEME", rules: `[Özel gereksinimli çocuklar için düzenlemeler]`},
	{title: "AİLE/TOPLUM KATILIMI", rules: `[Aile katılımı etkinlikleri ve toplum iş birlikleri]`},
}

// SectionCount is the number of numbered sections a monthly plan has
func SectionCount() int {
	return len(monthlyLayout)
}

func monthlyOutcome(o model.LearningOutcome) string {
	return fmt.Sprintf(`KAZANIM ID %d - %s DERSİ:
  Alan Becerisi: %s
  Öğrenme Çıktısı: %s
  Alt Öğrenme Çıktıları: %s
  Bütünleşik Beceriler: %s
  Süreç Bileşenleri: %s`,
		o.ID, o.Subject, o.AreaSkill, o.Outcome,
		orNone(o.SubOutcome), orNone(o.IntegratedSkills), orNone(o.ProcessComponent))
}

func buildMonthly(ctx Context) string {
	areas := strings.Join(subjects(ctx.Outcomes), ", ")

	var b strings.Builder
	fmt.Fprintf(&b, `Sen Türkiye Maarif Modeli'ne göre okul öncesi eğitim için aylık plan hazırlayan bir eğitim uzmanısın.

Aşağıdaki bilgilere göre %s yaş grubu için %s ayı aylık planı oluştur.

🚨 KRİTİK KURALLAR - BUNLARA MUTLAKA UY:
1. SADECE aşağıda verilen kazanımları kullan. Başka kazanım ekleme!
2. SADECE kazanımlarda belirtilen derslerin/alanların planını yap.
3. Her kazanımı olduğu gibi kullan, değiştirme veya genişletme.
4. Alan Becerilerinde SADECE %s alanlarını ekle.
5. ⚠️ TÜM METİNLERİ TAMAMEN YAZ! Hiçbir metni kısaltma veya "..." ile bitirme!
`, ctx.AgeGroup, ctx.Period, areas)

	if !ctx.Overrides.IsEmpty() {
		upper := cases.Upper(language.Turkish)
		b.WriteString("\n🔴 ÇOK ÖNEMLİ: Kullanıcı aşağıdaki müfredat öğelerini seçti. BUNLARI AYNEN KULLANMAK ZORUNDASIN:\n")
		for _, section := range monthlyLayout {
			if section.category == "" {
				continue
			}
			items := overrideItems(ctx.Overrides, section.category)
			if len(items) == 0 {
				continue
			}
			if len(items) > mandatoryPreview {
				items = items[:mandatoryPreview]
			}
			fmt.Fprintf(&b, "%s: %s\n", upper.String(section.category.Label()), strings.Join(items, ", "))
		}
	}

	fmt.Fprintf(&b, "\nSADECE ŞU ALANLAR PLANLANACAK: %s\n", areas)
	fmt.Fprintf(&b, "\nToplam %d kazanım verildi. SADECE bunları kullan:\n\nVERİLEN KAZANIMLAR (DEĞİŞTİRMEDEN KULLAN):\n", len(ctx.Outcomes))
	for _, o := range ctx.Outcomes {
		b.WriteString(monthlyOutcome(o))
		b.WriteString("\n\n")
	}

	if !ctx.Snapshot.IsEmpty() {
		b.WriteString("MÜFREDAT BİLEŞENLERİ:\n")
		for _, c := range model.FlatCategories() {
			if items := ctx.Snapshot.Flat(c).Items(); len(items) > 0 {
				fmt.Fprintf(&b, "%s: %s\n", c.Label(), strings.Join(items, ", "))
			}
		}
		b.WriteString("\n")
	}

	if ctx.CustomInstructions != "" {
		fmt.Fprintf(&b, "ÖZEL TALİMATLAR: %s\n\n", ctx.CustomInstructions)
	}

	b.WriteString("AYLIK PLAN FORMATI (TAM OLARAK BU FORMATI KULLAN):\n")
	for i, section := range monthlyLayout {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, section.title)
		if items := overrideItems(ctx.Overrides, section.category); len(items) > 0 {
			b.WriteString("ZORUNLU - AYNEN KULLAN:\n")
			for _, item := range items {
				b.WriteString("- " + item + "\n")
			}
		}
		b.WriteString(section.rules)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nNOT: Plan %s yaş grubuna uygun, gelişimsel özellikleri dikkate alan, sarmal bir yaklaşımla hazırlanmalıdır.\n", ctx.AgeGroup)
	return b.String()
}
