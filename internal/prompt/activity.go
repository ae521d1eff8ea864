package prompt

import (
	"fmt"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

const activityPersona = `Sen deneyimli bir okul öncesi öğretmenisin. Maarif Modeli'ne hakim, gelişimsel uygunluk ilkelerini bilen, çocuk merkezli ve oyun temelli öğrenme yaklaşımını benimseyen bir eğitimcisin.

GÖREV: Aşağıdaki kazanımlar ve müfredat bileşenleri için pedagojik olarak doğru, gelişime uygun, yaratıcı bir etkinlik planı hazırla.

PEDAGOJİK İLKELER:
1. Gelişimsel uygunluk: yaş grubunun fiziksel, bilişsel ve sosyal-duygusal özelliklerini dikkate al
2. Bütünsel yaklaşım: tüm gelişim alanlarına hitap et
3. Oyun temelli öğrenme ve aktif katılım
4. Bireysel farklılıklar: her çocuğun öğrenme hızı farklıdır
5. Somuttan soyuta, yakından uzağa
`

// outcomeBlock renders one outcome as the detailed list entry used by
// activity prompts
func outcomeBlock(o model.LearningOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Yaş: %s\n", o.AgeGroup)
	fmt.Fprintf(&b, "  Ders: %s\n", o.Subject)
	if o.AreaSkill != "" {
		fmt.Fprintf(&b, "  Alan Becerileri: %s\n", o.AreaSkill)
	}
	if o.IntegratedSkills != "" {
		fmt.Fprintf(&b, "  Bütünleşik Beceriler: %s\n", o.IntegratedSkills)
	}
	if o.ProcessComponent != "" {
		fmt.Fprintf(&b, "  Süreç Bileşenleri: %s\n", o.ProcessComponent)
	}
	fmt.Fprintf(&b, "  Öğrenme Çıktıları: %s\n", o.Outcome)
	if o.SubOutcome != "" {
		fmt.Fprintf(&b, "  Alt Öğrenme Çıktıları: %s\n", o.SubOutcome)
	}
	return b.String()
}

func buildActivity(ctx Context) string {
	duration := ExtractDuration(ctx.CustomInstructions)
	split := DurationSplit(duration)

	var b strings.Builder
	b.WriteString(activityPersona)

	b.WriteString("\nKAZANIMLAR (Detaylı):\n")
	for _, o := range ctx.Outcomes {
		b.WriteString(outcomeBlock(o))
		b.WriteString("\n")
	}

	selections := overrideLines(ctx.Overrides)
	if ctx.CustomInstructions != "" || len(selections) > 0 {
		b.WriteString("ÖZEL TALİMATLAR VE MÜFREDAT SEÇİMLERİ:\n")
		if ctx.CustomInstructions != "" {
			b.WriteString(ctx.CustomInstructions)
			b.WriteString("\n")
		}
		for _, line := range selections {
			b.WriteString("- " + line + "\n")
		}
		b.WriteString("\nBu özel talimatları ve müfredat bileşenlerini etkinlik planına dahil et. Seçilen değerler, eğilimler, beceriler ve bileşenleri etkinlik içinde kullan.\n\n")
	}

	fmt.Fprintf(&b, `ÖNEMLİ HATIRLATMALAR:
- ETKİNLİK SÜRESİ TAM OLARAK %d DAKİKA OLMALIDIR! Bölümlerin toplamı bu süreye uygun olmalı.
- TÜM ADIMLARI GENİŞ ZAMAN KİPİNDE YAZ (yapılır, edilir, sorulur).
- Değerlendirme bölümünü MUTLAKA DOLDUR.
- ASLA PARANTEZ İÇİNDE KAZANIM KODU YAZMA!

ÇIKTI FORMATI: Aşağıdaki JSON formatında döndür (SADECE JSON, başka açıklama ekleme):

{
  "etkinlik_adi": "Kazanıma uygun, özgün bir isim",
  "alan_adi": "Ana gelişim alanı (Fen ve Ekoloji/Matematik/Türkçe/Sanat/Müzik/Hareket ve Sağlık/Sosyal)",
  "yas_grubu": "%s",
  "sure": %d,
  "uygulama_yeri": "Sınıf içi/Bahçe/Spor salonu/Sanat atölyesi",
  "amaclar": ["Etkinliğin amaçları"],
  "materyaller": ["Güvenli ve yaşa uygun materyaller"],
  "uygulama_sureci": {
    "giris": {"sure": "%d-%d dakika", "adimlar": ["Dikkat çekici başlangıç adımları"]},
    "gelisme": {"sure": "%d-%d dakika", "aktiviteler": {"kesfetme": "...", "deneyimleme": "...", "uygulama": "...", "paylasma": "..."}},
    "yansima_cemberi": {"sure": "%d-%d dakika", "duzenleme": "Oturma düzeni", "sorular": ["Yönlendirici sorular"], "temizlik": "Toplanma"},
    "sonuc": {"sure": "%d dakika", "aktiviteler": ["Kapanış adımları"]}
  },
  "uyarlama": {"Görme Yetersizliği": "...", "İşitme Yetersizliği": "...", "Dikkat Eksikliği / Hiperaktivite": "..."},
  "farklilastirma_ve_kapsayicilik": {
    "Öğrenme Hızı Farkı": {"İleri Düzey": "...", "Temel Düzey": "..."},
    "Dil Desteği": "...",
    "Çoklu Duyusal Yaklaşım": "..."
  },
  "degerlendirme": {
    "program_tarafindan": ["Program değerlendirme soruları"],
    "amaclanan_beceriler_tarafindan": ["Beceri değerlendirme soruları"],
    "ogrenciler_tarafindan": ["Çocuk değerlendirme soruları"]
  }
}

ÖNEMLİ KURALLAR:
1. "sure" alanı sadece sayı olmalı (örn: %d).
2. TÜM ALANLARI DOLDUR.
3. JSON GEÇERLİ olmalı: tüm tırnak ve parantezler kapatılmalı, son elemandan sonra virgül olmamalı.
4. JSON içinde satır sonu kullanma, uzun metinleri tek satırda yaz.
`,
		duration, ageGroupOr(ctx), duration,
		split.Intro[0], split.Intro[1],
		split.Development[0], split.Development[1],
		split.Reflection[0], split.Reflection[1],
		split.Closing, duration)

	return b.String()
}

func ageGroupOr(ctx Context) string {
	if ctx.AgeGroup != "" {
		return ctx.AgeGroup
	}
	return "36-48 ay/48-60 ay/60-72 ay"
}
