package prompt

import (
	"fmt"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

type activityRef struct {
	Name     string `json:"adi"`
	Area     string `json:"alan"`
	Duration int    `json:"sure"`
}

const singleActivityRule = `ETKİNLİKLER BÖLÜMÜ İÇİN ÖZEL TALİMAT:
- TEK ETKİNLİK olduğu için numara kullanma
- Direkt etkinlik başlığıyla başla: "(Alan Adı - Etkinlik Adı)" şeklinde, parantez içinde
- Etkinlik EN AZ 10-15 cümle uzunluğunda, DETAYLI ve ADIM ADIM açıklanmalı
- Kazanım kodlarını parantez içinde belirt ama çok fazla kullanma`

const multipleActivityRule = `ETKİNLİKLER BÖLÜMÜ İÇİN ÖZEL TALİMAT:
- %d ETKİNLİK var, hepsini açık ve net yaz
- Her etkinlik AYRI PARAGRAF olmalı ve aralarında BOŞ SATIR bırak
- Her etkinliği "(Alan Adı - Etkinlik Adı):" şeklinde başlat
- Her etkinlik EN AZ 10-15 cümle uzunluğunda, DETAYLI ve ADIM ADIM açıklanmalı
- Kazanım kodlarını parantez içinde belirt ama çok fazla kullanma`

func buildDaily(ctx Context) string {
	snap := ctx.Snapshot
	if snap == nil {
		snap = model.NewSnapshot()
	}

	total := 0
	refs := make([]activityRef, 0, len(ctx.Activities))
	for _, a := range ctx.Activities {
		total += a.Duration
		refs = append(refs, activityRef{Name: a.Name, Area: a.Area, Duration: a.Duration})
	}

	var b strings.Builder
	fmt.Fprintf(&b, `MEB MAARİF MODELİ OKUL ÖNCESİ GÜNLÜK PLANI OLUŞTUR

Plan Bilgileri:
- Plan Adı: %s
- Yaş Grubu: %s
- Toplam Süre: %d dakika

Seçilen Etkinlikler:
%s

ETKİNLİKLERDEN ÇIKARILAN MÜFREDAT BİLEŞENLERİ (BUNLARI AYNEN KULLAN):
`, ctx.PlanName, ctx.AgeGroup, total, jsonText(refs, true))

	fmt.Fprintf(&b, "\nAlan Becerileri:\n%s\n", jsonText(snap.AreaSkills, true))
	fmt.Fprintf(&b, "\nÖğrenme Çıktıları:\n%s\n", jsonText(snap.LearningOutcomes, true))
	for _, c := range model.FlatCategories() {
		fmt.Fprintf(&b, "\n%s:\n%s\n", c.Label(), jsonText(snap.Flat(c), false))
	}

	if selections := overrideLines(ctx.Overrides); len(selections) > 0 {
		b.WriteString("\nZORUNLU - ÖĞRETMENİN SEÇTİĞİ ÖĞELER (AYNEN KULLAN):\n")
		for _, line := range selections {
			b.WriteString("- " + line + "\n")
		}
	}

	if strings.TrimSpace(ctx.CustomInstructions) != "" {
		fmt.Fprintf(&b, "\nÖZEL TALİMATLAR (ÖĞRETMENİN İSTEKLERİ, MUTLAKA UYGULA):\n%s\n", ctx.CustomInstructions)
	}

	b.WriteString(`
ÇOK ÖNEMLİ:
1. YUKARIDAKİ MÜFREDAT BİLEŞENLERİNİ AYNEN KULLAN, YENİ KOD UYDURMA
2. Her bölümü DETAYLI ve UZUN yaz
3. SADECE SEÇİLEN ETKİNLİKLERİN ALANLARINI KULLAN

`)
	if len(ctx.Activities) <= 1 {
		b.WriteString(singleActivityRule)
	} else {
		fmt.Fprintf(&b, multipleActivityRule, len(ctx.Activities))
	}

	fmt.Fprintf(&b, `

JSON ŞABLONU (TÜM ALANLARI DOLDUR):
{
  "alan_becerileri": %s,
  "kavramsal_beceriler": %s,
  "egilimler": %s,
  "programlar_arasi_bilesenler": {
    "sosyal_duygusal_ogrenme_becerileri": %s,
    "degerler": %s,
    "okuryazarlik_becerileri": %s
  },
  "ogrenme_ciktilari_ve_surec_bilesenleri": %s,
  "icerik_cercevesi": {
    "kavramlar": "Etkinliklere uygun kavram çiftleri (Az-Çok, Büyük-Küçük)",
    "sozcukler": "Günün yeni sözcükleri",
    "materyaller": "Kullanılacak tüm materyaller",
    "egitim_ogrenme_ortamlari": "Sınıf, öğrenme merkezleri, bahçe"
  },
  "ogrenme_ogretme_yasantilari": {
    "gune_baslama_zamani": "En az 5-6 cümle",
    "ogrenme_merkezlerinde_oyun": "En az 5-6 cümle",
    "beslenme_toplanma_temizlik": "En az 5-6 cümle",
    "etkinlikler": "Yukarıdaki talimata göre etkinlik anlatımı"
  },
  "degerlendirme": "• En az 7-8 değerlendirme sorusu, her biri ayrı satırda",
  "farklilastirma": {
    "zenginlestirme": "Zenginleştirme önerileri",
    "destekleme": "Destekleme önerileri"
  },
  "aile_toplum_katilimi": {
    "aile_katilimi": "Aile katılımı önerileri",
    "toplum_katilimi": "Toplum katılımı önerileri"
  }
}

HATIRLATMALAR:
1. JSON ŞABLONUNDA VERİLEN MÜFREDAT DEĞERLERİNİ AYNEN KULLAN - yeni değer ekleme, var olanları değiştirme
2. Aynı kodu birden fazla kez yazma
3. Cümleleri yarıda kesme, hiçbir metni "..." ile bitirme
4. Mutlaka geçerli JSON formatında yanıt ver, başka açıklama ekleme
`,
		jsonText(snap.AreaSkills, false),
		jsonText(snap.ConceptualSkills, false),
		jsonText(snap.Tendencies, false),
		jsonText(snap.SocialEmotional, false),
		jsonText(snap.Values, false),
		jsonText(snap.Literacy, false),
		jsonText(snap.LearningOutcomes, false))

	return b.String()
}
