package callflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/room4-2/LoanConverse/contact"
	"github.com/room4-2/LoanConverse/loan"
)

// The fixed Azerbaijani call script. Every system utterance the controller
// can emit is built here; no state handler assembles customer-facing text
// inline. None of these templates ever receives a verification secret.

const (
	uttSecurityCheck = "Təşəkkür edirəm! Təhlükəsizlik məqsədilə kimlik təsdiqləməsi aparmalıyam. Lütfən ata adınızı və doğum tarixinizi söyləyin."
	uttAskFather     = "Ata adınızı da söyləyin."
	uttAskBirthDate  = "Doğum tarixinizi də söyləyin."
	uttVerified      = "Təşəkkür edirəm, kimlik təsdiqləndi. Sizin üçün əvvəlcədən təsdiqlənmiş biznes kredit təklifi var. Əgər bu təklif haqqında ətraflı məlumat almaq istəyirsinizsə, lütfən 'Bəli' deyin."
	uttRejected      = "Üzr istəyirəm, təhlükəsizlik məqsədilə kimlik təsdiqlənmədi. Zəngi bitirirəm. Gözəl gün arzulayıram!"
	uttWrongNumber   = "Üzr istəyirəm, yanlış nömrəyə zəng etmişəm. Zəngi bitirirəm. Gözəl gün arzulayıram!"
	uttDeclined      = "Başa düşdüm. Vaxtınıza görə təşəkkür edirəm. Gözəl gün arzulayıram!"
	uttToDataCollect = "Əla! Müraciətinizi davam etdirmək üçün sizdən bir neçə sual soruşmalıyam."
	uttAskSector     = "Biznes sektorunuzu və alt-sektorunuzu deyə bilərsinizmi?"
	uttAskSubSector  = "Alt-sektorunuzu da deyə bilərsinizmi?"
	uttOfferHelp     = "Sizə kömək etməyə hazıram. Nə bilmək istədiyinizi və ya fərqli məbləğ və ya müddət seçmək istədiyinizi deyin."
	uttAskLocation   = "Təşəkkür edirəm! İndi biznesinizin hansı şəhər və rayonda fəaliyyət göstərdiyini soruşa bilərəmmi?"
	uttAskDistrict   = "Rayonu da deyə bilərsinizmi?"
	uttAskPhones     = "Son olaraq, ödəniş problemi yaşandığı təqdirdə əlaqə saxlaya biləcəyimiz iki əlavə telefon nömrəsi verə bilərsinizmi?"
	uttPhoneInvalid  = "Üzr istəyirəm, telefon nömrələri düzgün formatda deyil. Azərbaycan telefon nömrələri 10 rəqəmdən ibarət olmalı və 050, 055, 010, 070, 077 və ya 099 ilə başlamalıdır. Lütfən, iki düzgün telefon nömrəsi verin."
	uttNeedSecond    = "Mənə iki telefon nömrəsi lazımdır. Lütfən, ikinci telefon nömrəsini də verin."
	uttEscalate      = "Bu sual üzrə sizi mütəxəssisimizə yönləndirməliyəm, o sizinlə əlaqə saxlayacaq. Davam edə bilərikmi?"
	uttDispatchFail  = "Üzr istəyirəm, texniki problem yarandı və SMS göndərilə bilmədi. Yenidən cəhd etmək üçün 'Bəli' deyin."
	uttAmendFinal    = "Son dəfə kredit müraciətinizi təsdiqləyirsiniz? Bu çox vacibdir."
	uttClosingAsk    = "Başqa bir sualınız varmı?"
	uttClosingListen = "Buyurun, sualınızı verin."
	uttClosingFinal  = "Birbank Biznesi seçdiyiniz üçün təşəkkür edirəm. Xatırladıram ki, sənədləri gün sonuna qədər təsdiqləməsəniz, kredit müraciətiniz ləğv ediləcək. Gözəl gün arzulayıram!"
)

func uttGreeting(fullName string) string {
	return fmt.Sprintf("Salam! Bu Birbank Biznesdir. %s ilə danışıram?", fullName)
}

func uttPresentOffer(offer *loan.Offer) string {
	return fmt.Sprintf("Təşəkkür edirəm! Sizin üçün əvvəlcədən təsdiqlənmiş kredit məbləği %s manatdır, müddəti %d aydır. Bu təklif haqqında hansı suallarınız var?",
		formatAmount(offer.Amount()), offer.TermMonths())
}

func uttConfirmSector(sector, subSector string) string {
	return fmt.Sprintf("Dediniz ki, sektorunuz %s, alt-sektorunuz %s. Düzgündür?", sector, subSector)
}

func uttAcceptCheck(offer *loan.Offer) string {
	return fmt.Sprintf("Məlumatlarınıza əsasən, sizin təsdiqlənmiş kredit məbləğiniz %s manatdır, müddəti %d aydır. Əgər bu şərtlərlə davam etmək istəyirsinizsə, növbəti addımlara keçə bilərik.",
		formatAmount(offer.Amount()), offer.TermMonths())
}

func uttConfirmPhones(first, second string) string {
	return fmt.Sprintf("Aldığım telefon nömrələri: birinci %s, ikinci %s. Düzgündür?",
		contact.FormatPhone(first), contact.FormatPhone(second))
}

func uttFinalConfirm(offer *loan.Offer) string {
	return fmt.Sprintf("SMS göndərməzdən əvvəl son dəfə təsdiqləyək: Sizin kredit məbləğiniz %s manatdır, müddəti %d aydır, faiz dərəcəsi %.0f%%-dir. Bu şərtlərlə kredit müraciətinizi təsdiqləyirsiniz? Əgər təsdiqləyirsinizsə 'Bəli' deyin.",
		formatAmount(offer.Amount()), offer.TermMonths(), offer.Rate())
}

func uttDispatched(offer *loan.Offer, accountSuffix string) string {
	return fmt.Sprintf("Əla! Sənədləriniz hazırdır. Qısa müddətdə SMS alacaqsınız. Lütfən, linkə klikləyin, DVS portalında kimlik təsdiqləməsini keçin və təsdiqləyin. Tamamlandıqdan sonra kredit məbləği %s ilə bitən biznes hesabınıza köçürüləcək.",
		accountSuffix)
}

func uttAskNewAmount(oldAmount float64) string {
	return fmt.Sprintf("Daha əvvəl %s manat məbləğini seçmişdiniz. Yeni məbləğin nə olmasını istəyirsiniz?", formatAmount(oldAmount))
}

func uttConfirmNewAmount(newAmount float64) string {
	return fmt.Sprintf("%s manat məbləği ilə yeni məlumatları istifadə edərək davam edim?", formatAmount(newAmount))
}

func uttAmountRule() string {
	return fmt.Sprintf("Kredit məbləği %s manat ilə %s manat arasında olmalıdır. Lütfən, bu aralıqda məbləğ deyin.",
		formatAmount(loan.MinAmount), formatAmount(loan.MaxAmount))
}

func uttTermRule() string {
	return "Yalnız 6, 12, 24 və ya 36 ay müddətlərini təklif edirik. Bu dörd seçimdən birini seçməlisiniz."
}

// formatAmount renders "50000" as "50,000" the way the script reads amounts.
func formatAmount(amount float64) string {
	whole := strconv.FormatFloat(amount, 'f', 0, 64)
	if frac := amount - float64(int64(amount)); frac > 0.004 {
		whole = strconv.FormatFloat(amount, 'f', 2, 64)
	}
	intPart, fracPart, _ := strings.Cut(whole, ".")

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ",")
	if neg {
		out = "-" + out
	}
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}
