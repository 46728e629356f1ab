package fastpath

import (
	"fmt"
	"hash/fnv"

	"mudabbir/internal/intent"
)

// Locale selects the reply language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// LocaleFor replies in Arabic when the user wrote any Arabic.
func LocaleFor(text string) Locale {
	if intent.ContainsArabic(text) {
		return LocaleAR
	}
	return LocaleEN
}

type MessageID string

const (
	MsgCanceled           MessageID = "canceled"
	MsgPendingReprompt    MessageID = "pending_reprompt"
	MsgConfirmPrompt      MessageID = "confirm_prompt"
	MsgUnsupported        MessageID = "unsupported"
	MsgFailed             MessageID = "failed"
	MsgBatteryUnavailable MessageID = "battery_unavailable"
)

type messageKey struct {
	id     MessageID
	locale Locale
}

var messages = map[messageKey]string{
	{MsgCanceled, LocaleEN}:           "Canceled the pending dangerous operation.",
	{MsgCanceled, LocaleAR}:           "تم إلغاء العملية الخطرة.",
	{MsgPendingReprompt, LocaleEN}:    "A dangerous operation is pending. Reply 'yes' to execute or 'cancel' to abort.",
	{MsgPendingReprompt, LocaleAR}:    "لدي عملية خطرة بانتظار التأكيد. اكتب 'نعم' للتنفيذ أو 'إلغاء' للإلغاء.",
	{MsgConfirmPrompt, LocaleEN}:      "This is a destructive command. Reply 'yes' to confirm or 'cancel' to abort.",
	{MsgConfirmPrompt, LocaleAR}:      "هذا أمر خطِر. للتأكيد اكتب: نعم. للإلغاء اكتب: إلغاء.",
	{MsgUnsupported, LocaleEN}:        "This capability is not implemented yet.",
	{MsgUnsupported, LocaleAR}:        "هذه المهارة غير مدعومة حالياً.",
	{MsgFailed, LocaleEN}:             "Command failed: %s",
	{MsgFailed, LocaleAR}:             "تعذر تنفيذ الأمر: %s",
	{MsgBatteryUnavailable, LocaleEN}: "Battery information is not available on this machine right now.",
	{MsgBatteryUnavailable, LocaleAR}: "لا يمكن قراءة معلومات البطارية على هذا الجهاز حالياً.",
}

// Message renders a localized message, falling back to English.
func Message(id MessageID, locale Locale, args ...any) string {
	tmpl, ok := messages[messageKey{id, locale}]
	if !ok {
		tmpl = messages[messageKey{id, LocaleEN}]
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

var acks = map[Locale][]string{
	LocaleEN: {
		"Command executed successfully.",
		"Done.",
		"All set.",
		"Done, that's taken care of.",
	},
	LocaleAR: {
		"تم تنفيذ الأمر.",
		"تم.",
		"تم بنجاح.",
		"تمت العملية.",
	},
}

// Ack picks a generic acknowledgement. The same session, action and mode
// always get the same phrase.
func Ack(locale Locale, session, action, mode string) string {
	list := acks[locale]
	if len(list) == 0 {
		list = acks[LocaleEN]
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(session + "|" + action + "|" + mode))
	return list[h.Sum32()%uint32(len(list))]
}
